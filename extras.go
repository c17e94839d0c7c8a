package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/detect"
	"github.com/aerissecure/rubricconvert/docx"
	"github.com/aerissecure/rubricconvert/internal/fsutil"
	"github.com/aerissecure/rubricconvert/rbc"
	"github.com/aerissecure/rubricconvert/xlsx"
)

// ExampleGrid is the starter rubric as a grid.
func ExampleGrid() xlsx.Grid {
	return rbc.FromDocument(rbc.Example()).ToGrid()
}

// WriteExampleWorkbook writes the starter rubric workbook to w.
func WriteExampleWorkbook(w io.Writer) error {
	return xlsx.WriteGrid(w, ExampleGrid())
}

// WriteExample writes the starter rubric workbook to output.
func WriteExample(output string, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	var buf bytes.Buffer
	if err := WriteExampleWorkbook(&buf); err != nil {
		return nil, errors.Wrap(err, "cannot build example workbook")
	}
	if err := fsutil.WriteFileAtomic(output, buf.Bytes(), outputPerm); err != nil {
		return nil, errors.Wrapf(err, "cannot write %s", output)
	}

	g := ExampleGrid()
	res := &Result{
		Output:   output,
		Title:    rbc.Example().Name(),
		Criteria: len(g.Rows),
		Columns:  valueColumns(g),
	}
	c.report("example", res)
	return res, nil
}

// Source kinds reported by LoadGrid and Inspect.
const (
	SourceTurnitin    = "turnitin"
	SourceIMS         = "ims"
	SourceSpreadsheet = "spreadsheet"
	SourceDocument    = "document"
)

// LoadGrid reads any supported input (.rbc, .json, .xlsx or an exported
// .docx) as a grid, along with its title and source kind. Spreadsheets and
// documents are titled after their file name.
func LoadGrid(input string) (g xlsx.Grid, title, kind string, err error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".rbc", ".json":
		data, err := os.ReadFile(input)
		if err != nil {
			return g, "", "", errors.Wrapf(err, "cannot read %s", input)
		}
		kind = SourceTurnitin
		if detect.IsIMSJSON(data) {
			kind = SourceIMS
		}
		g, title, err = jsonGrid(input, data)
		return g, title, kind, err
	case ".xlsx":
		g, err = readWorkbook(input)
		return g, NameFromPath(input), SourceSpreadsheet, err
	case ".docx":
		g, err = docx.ReadGridFile(input)
		if err != nil {
			return g, "", "", inputError(input, err)
		}
		return g, NameFromPath(input), SourceDocument, nil
	}
	return g, "", "", inputError(input, ErrUnsupportedExtension)
}

// Preview renders input as an HTML table.
func Preview(input string) (string, error) {
	g, title, _, err := LoadGrid(input)
	if err != nil {
		return "", err
	}
	return xlsx.RenderGridHTML(g, title), nil
}

// ExportDocument writes the grid of input to output as a Word document.
func ExportDocument(input, output string, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	g, title, _, err := LoadGrid(input)
	if err != nil {
		return nil, err
	}
	if c.rubricName != "" {
		title = c.rubricName
	}

	var buf bytes.Buffer
	if err := docx.WriteGrid(&buf, g, title); err != nil {
		return nil, errors.Wrap(err, "cannot build document")
	}
	if err := fsutil.WriteFileAtomic(output, buf.Bytes(), outputPerm); err != nil {
		return nil, errors.Wrapf(err, "cannot write %s", output)
	}

	res := &Result{
		Input:    input,
		Output:   output,
		Title:    title,
		Criteria: len(g.Rows),
		Columns:  valueColumns(g),
	}
	c.report("document", res)
	return res, nil
}

// Summary is the outline of a rubric file printed by Inspect.
type Summary struct {
	Source   string             `yaml:"source" json:"source"`
	Title    string             `yaml:"title" json:"title"`
	Columns  []string           `yaml:"columns" json:"columns"`
	Criteria []CriterionSummary `yaml:"criteria" json:"criteria"`
}

// CriterionSummary counts the filled cells of one criterion.
type CriterionSummary struct {
	Name   string `yaml:"name" json:"name"`
	Filled int    `yaml:"filled" json:"filled"`
}

// Inspect outlines the rubric in input without converting it.
func Inspect(input string) (*Summary, error) {
	g, title, kind, err := LoadGrid(input)
	if err != nil {
		return nil, err
	}

	critCol := g.ColumnIndex(cell.CriterionColumn)
	if critCol < 0 {
		critCol = 0
	}

	s := &Summary{Source: kind, Title: title, Columns: g.Columns}
	for _, row := range g.Rows {
		var cs CriterionSummary
		for i, text := range row {
			if i == critCol {
				cs.Name, _ = cell.ParseCriterionLabel(text)
				continue
			}
			if strings.TrimSpace(text) != "" {
				cs.Filled++
			}
		}
		s.Criteria = append(s.Criteria, cs)
	}
	return s, nil
}
