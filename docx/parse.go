package docx

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/unidoc/unioffice/document"

	"github.com/aerissecure/rubricconvert/xlsx"
)

// ErrNoTable is returned when a document holds no table.
var ErrNoTable = errors.New("document has no table")

// ReadGridFile opens path and reads its first table.
func ReadGridFile(path string) (xlsx.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return xlsx.Grid{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return xlsx.Grid{}, err
	}
	return ReadGrid(f, info.Size())
}

// ReadGrid reads the first table of a .docx file. Its first row is the
// header; paragraphs within a cell are joined with newlines.
func ReadGrid(r io.ReaderAt, size int64) (xlsx.Grid, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return xlsx.Grid{}, err
	}

	tables := doc.Tables()
	if len(tables) == 0 {
		return xlsx.Grid{}, ErrNoTable
	}

	rows := tables[0].Rows()
	if len(rows) == 0 {
		return xlsx.Grid{}, nil
	}

	var g xlsx.Grid
	for _, c := range rows[0].Cells() {
		g.Columns = append(g.Columns, cellText(c))
	}
	for _, row := range rows[1:] {
		var cells []string
		for _, c := range row.Cells() {
			cells = append(cells, cellText(c))
		}
		g.AddRow(cells...)
	}
	return g, nil
}

func cellText(c document.Cell) string {
	var lines []string
	for _, p := range c.Paragraphs() {
		var sb strings.Builder
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
