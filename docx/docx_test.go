package docx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"

	"github.com/aerissecure/rubricconvert/xlsx"
)

func sampleGrid() xlsx.Grid {
	g := xlsx.NewGrid("Criterion (name and description)", "Good (desc [value])", "Bad (desc [value])")
	g.AddRow("Analysis\nDeep dive", "Insightful [5]", "[1]")
	g.AddRow("Writing", "", "Unclear [0]")
	return g
}

func TestWriteReadGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, sampleGrid(), "Essay"))

	g, err := ReadGrid(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, sampleGrid(), g)
}

func TestReadGridFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteGrid(f, sampleGrid(), ""))
	require.NoError(t, f.Close())

	g, err := ReadGridFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleGrid().Columns, g.Columns)
	assert.Len(t, g.Rows, 2)
}

func TestReadGridNoTable(t *testing.T) {
	doc := document.New()
	doc.AddParagraph().AddRun().AddText("no table here")
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	_, err := ReadGrid(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, ErrNoTable)
}
