package xlsx

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ErrNoSheet is returned when a workbook has no worksheet or no header row.
var ErrNoSheet = errors.New("workbook has no data")

// ReadGridFile opens path and reads its first worksheet as a Grid.
func ReadGridFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return Grid{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Grid{}, err
	}
	return ReadGrid(f, info.Size())
}

// ReadGrid reads an XLSX from r/size. The first row of the first sheet is
// the header; every later non-blank row becomes a grid row. Cells that do not
// hold text (numbers, booleans, errors) read as "" in data rows.
func ReadGrid(r io.ReaderAt, size int64) (Grid, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return Grid{}, err
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return Grid{}, ErrNoSheet
	}
	rows := sheets[0].Rows()
	if len(rows) == 0 {
		return Grid{}, ErrNoSheet
	}

	// ---- header ----
	var header []string
	for _, cell := range rows[0].Cells() {
		colIdx, ok := columnIndex(cell)
		if !ok {
			continue
		}
		for len(header) <= colIdx {
			header = append(header, "")
		}
		header[colIdx] = strings.TrimSpace(cell.GetFormattedValue())
	}
	// trailing blank header cells carry no column
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return Grid{}, ErrNoSheet
	}

	g := NewGrid(header...)

	// ---- data rows ----
	for _, row := range rows[1:] {
		cells := make([]string, len(header))
		blank := true
		for _, cell := range row.Cells() {
			colIdx, ok := columnIndex(cell)
			if !ok || colIdx >= len(header) {
				continue
			}
			text := cellText(cell)
			cells[colIdx] = text
			if strings.TrimSpace(text) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		g.AddRow(cells...)
	}

	return g, nil
}

func columnIndex(cell spreadsheet.Cell) (int, bool) {
	colName, err := cell.Column()
	if err != nil {
		return 0, false
	}
	return int(reference.ColumnToIndex(colName)), true
}

// cellText returns the string content of text cells only.
func cellText(cell spreadsheet.Cell) string {
	switch cell.X().TAttr {
	case sml.ST_CellTypeS, sml.ST_CellTypeInlineStr, sml.ST_CellTypeStr:
		return cell.GetString()
	}
	return ""
}
