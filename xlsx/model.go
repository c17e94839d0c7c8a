package xlsx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Intermediate representation for rubric spreadsheets.

// Grid is the rectangular spreadsheet layout of a rubric: a header row of
// column names and one row per criterion. Every row has len(Columns) cells.
type Grid struct {
	Columns []string
	Rows    [][]string
}

// NewGrid returns an empty grid with the given header.
func NewGrid(columns ...string) Grid {
	return Grid{Columns: columns}
}

// AddRow appends a row, padding or cutting it to the column count.
func (g *Grid) AddRow(cells ...string) {
	row := make([]string, len(g.Columns))
	copy(row, cells)
	g.Rows = append(g.Rows, row)
}

// ColumnIndex returns the index of the first column called name, or -1.
func (g Grid) ColumnIndex(name string) int {
	for i, c := range g.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ErrMissingColumn is returned by RequireColumn.
var ErrMissingColumn = errors.New("missing required column")

// RequireColumn is ColumnIndex for columns the caller cannot do without.
func (g Grid) RequireColumn(name string) (int, error) {
	i := g.ColumnIndex(name)
	if i < 0 {
		return -1, errors.Wrapf(ErrMissingColumn, "column %q", name)
	}
	return i, nil
}

// Cell returns the text at row r, column c, or "" when out of range.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g.Rows) || c < 0 || c >= len(g.Rows[r]) {
		return ""
	}
	return g.Rows[r][c]
}

func (g Grid) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(g.Columns, " | "))
	for _, row := range g.Rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%q", row))
	}
	return b.String()
}
