// Package docx renders a rubric grid as a printable Word table and reads such
// a table back.
package docx

import (
	"io"
	"strings"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/rubricconvert/xlsx"
)

// NewDocument builds a document holding title as a bold heading followed by
// one bordered table for g. The header row is bold.
func NewDocument(g xlsx.Grid, title string) *document.Document {
	doc := document.New()

	if title != "" {
		run := doc.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.Properties().SetSize(14 * measurement.Point)
		run.AddText(title)
	}

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, 1*measurement.Point)

	header := table.AddRow()
	for _, col := range g.Columns {
		addCell(header, col, true)
	}
	for _, r := range g.Rows {
		row := table.AddRow()
		for _, text := range r {
			addCell(row, text, false)
		}
	}
	return doc
}

// addCell writes one paragraph per line so multi-line labels survive.
func addCell(row document.Row, text string, bold bool) {
	c := row.AddCell()
	for _, line := range strings.Split(text, "\n") {
		run := c.AddParagraph().AddRun()
		if bold {
			run.Properties().SetBold(true)
		}
		run.AddText(line)
	}
}

// WriteGrid writes g to w as a .docx file.
func WriteGrid(w io.Writer, g xlsx.Grid, title string) error {
	return NewDocument(g, title).Save(w)
}
