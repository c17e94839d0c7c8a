// Package ims maps IMS rubrics (CFRubric and the older criteria/levels
// layout) to and from the spreadsheet grid. IMS criteria each carry their own
// list of levels; nothing is shared between criteria.
package ims

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/xlsx"
)

// ErrNoCriteria is returned when a document holds no criteria.
var ErrNoCriteria = errors.New("no criteria found in IMS rubric")

// ErrNotObject is returned when the document is not a JSON object.
var ErrNotObject = errors.New("IMS rubric is not a JSON object")

// Rubric is a variable-level rubric.
type Rubric struct {
	Title    string
	Criteria []Criterion
}

type Criterion struct {
	Name        string
	Description string
	Levels      []Level
}

type Level struct {
	Description string
	Score       cell.Value
}

// LevelColumn names the grid column of the n-th (1-based) level.
func LevelColumn(n int) string {
	return "Level " + strconv.Itoa(n) + cell.Suffix
}

// Parse reads a CFRubric or legacy IMS document. CFRubric keys win over
// legacy keys wherever both appear.
func Parse(data []byte) (Rubric, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Rubric{}, ErrNotObject
	}

	r := Rubric{Title: first(root, "Title", "title", "name")}

	crits := root.Get("CFRubricCriterion")
	if !crits.Exists() {
		crits = root.Get("criteria")
	}
	if !crits.IsArray() || len(crits.Array()) == 0 {
		return Rubric{}, ErrNoCriteria
	}

	for _, c := range crits.Array() {
		r.Criteria = append(r.Criteria, parseCriterion(c))
	}
	return r, nil
}

func parseCriterion(c gjson.Result) Criterion {
	var crit Criterion
	switch {
	case c.Get("category").String() != "":
		crit.Name = c.Get("category").String()
		crit.Description = first(c, "Description", "description")
	case c.Get("title").Exists():
		crit.Name = c.Get("title").String()
		crit.Description = first(c, "description", "Description")
	default:
		crit.Name, crit.Description = cell.ParseCriterionLabel(first(c, "Description", "description"))
	}

	levels := c.Get("CFRubricCriterionLevels")
	if !levels.Exists() {
		levels = c.Get("levels")
	}
	for _, l := range levels.Array() {
		crit.Levels = append(crit.Levels, parseLevel(l))
	}
	return crit
}

func parseLevel(l gjson.Result) Level {
	desc := first(l, "Description", "description")
	if title := strings.TrimSpace(l.Get("title").String()); title != "" {
		if desc != "" {
			desc = title + ": " + desc
		} else {
			desc = title
		}
	}

	score := l.Get("score")
	if !score.Exists() {
		score = l.Get("points")
	}
	var v cell.Value
	switch score.Type {
	case gjson.Number:
		v = cell.Float(score.Num)
	case gjson.String:
		v = cell.ParseNumber(score.Str)
	}
	return Level{Description: strings.TrimSpace(desc), Score: v}
}

// first returns the string value of the first key present in r.
func first(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// MaxLevels is the largest level count over all criteria.
func (r Rubric) MaxLevels() int {
	n := 0
	for _, c := range r.Criteria {
		if len(c.Levels) > n {
			n = len(c.Levels)
		}
	}
	return n
}

// ToGrid lays the rubric out with MaxLevels generic level columns. Criteria
// with fewer levels leave their trailing cells blank.
func (r Rubric) ToGrid() xlsx.Grid {
	columns := []string{cell.CriterionColumn}
	for i := 1; i <= r.MaxLevels(); i++ {
		columns = append(columns, LevelColumn(i))
	}
	g := xlsx.NewGrid(columns...)

	for _, c := range r.Criteria {
		row := []string{cell.FormatCriterionLabel(c.Name, c.Description)}
		for _, l := range c.Levels {
			row = append(row, cell.FormatCell(l.Description, l.Score))
		}
		g.AddRow(row...)
	}
	return g
}

// FromGrid reads a rubric titled title from g. Every column whose header
// ends in cell.Suffix is a level slot; column names are otherwise ignored.
// Empty cells produce no level.
func FromGrid(g xlsx.Grid, title string) (Rubric, error) {
	critCol, err := g.RequireColumn(cell.CriterionColumn)
	if err != nil {
		return Rubric{}, err
	}

	var levelCols []int
	for i, col := range g.Columns {
		if i != critCol && strings.HasSuffix(col, cell.Suffix) {
			levelCols = append(levelCols, i)
		}
	}

	r := Rubric{Title: title}
	for i := range g.Rows {
		var c Criterion
		c.Name, c.Description = cell.ParseCriterionLabel(g.Cell(i, critCol))
		for _, col := range levelCols {
			text := g.Cell(i, col)
			if strings.TrimSpace(text) == "" {
				continue
			}
			desc, v := cell.ParseCell(text)
			c.Levels = append(c.Levels, Level{Description: desc, Score: v})
		}
		r.Criteria = append(r.Criteria, c)
	}
	return r, nil
}
