package xlsx

import (
	"io"

	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/spreadsheet"
)

// Column widths used for written rubrics.
const (
	CriterionColumnWidth measurement.Distance = 5 * measurement.Centimeter
	ScaleColumnWidth     measurement.Distance = 3 * measurement.Centimeter
)

// SheetName is the name given to the single worksheet of a written rubric.
const SheetName = "Sheet1"

// NewWorkbook lays g out on a fresh single-sheet workbook. All cells wrap
// their text; empty grid cells are left without a value.
func NewWorkbook(g Grid) *spreadsheet.Workbook {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(SheetName)

	wrap := wb.StyleSheet.AddCellStyle()
	wrap.SetWrapped(true)

	header := sheet.AddRow()
	for _, name := range g.Columns {
		c := header.AddCell()
		c.SetString(name)
		c.SetStyle(wrap)
	}
	for _, cells := range g.Rows {
		row := sheet.AddRow()
		for _, text := range cells {
			c := row.AddCell()
			if text != "" {
				c.SetString(text)
			}
			c.SetStyle(wrap)
		}
	}

	for i := range g.Columns {
		width := ScaleColumnWidth
		if i == 0 {
			width = CriterionColumnWidth
		}
		sheet.Column(uint32(i + 1)).SetWidth(width)
	}
	return wb
}

// WriteGrid writes g as an XLSX workbook to w.
func WriteGrid(w io.Writer, g Grid) error {
	return NewWorkbook(g).Save(w)
}
