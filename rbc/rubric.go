package rbc

import (
	"sort"
	"strings"

	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/internal/ids"
	"github.com/aerissecure/rubricconvert/xlsx"
)

// Turnitin bookkeeping constants written into every rubric.
const (
	rubricID      ID  = 1
	scoringMethod int = 4
	cvLoaded          = "1"
)

// Rubric is a fixed-scale rubric: an ordered set of named scales shared by
// every criterion, and one cell per (criterion, scale).
type Rubric struct {
	Name     string
	Scales   []string
	Criteria []Row
}

// Row is one criterion with exactly len(Scales) cells.
type Row struct {
	Name        string
	Description string
	Cells       []Cell
}

type Cell struct {
	Description string
	Value       cell.Value
}

// FromDocument rebuilds the fixed-scale rubric of an RBC document. Scales
// are ordered by position; criteria keep the order in which the criteria
// collection lists them. Missing cells come back empty.
func FromDocument(doc Document) Rubric {
	r := Rubric{Name: doc.Name()}

	// later records replace earlier ones but keep the first position
	var critOrder []ID
	criteria := make(map[ID]Criterion)
	for _, c := range doc.RubricCriterion {
		if _, ok := criteria[c.ID]; !ok {
			critOrder = append(critOrder, c.ID)
		}
		criteria[c.ID] = c
	}

	var scaleOrder []ID
	scales := make(map[ID]Scale)
	for _, s := range doc.RubricScale {
		if _, ok := scales[s.ID]; !ok {
			scaleOrder = append(scaleOrder, s.ID)
		}
		scales[s.ID] = s
	}
	sorted := make([]Scale, 0, len(scaleOrder))
	for _, id := range scaleOrder {
		sorted = append(sorted, scales[id])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	type key struct{ criterion, scale ID }
	cells := make(map[key]CriterionScale)
	for _, cs := range doc.RubricCriterionScale {
		cells[key{cs.Criterion, cs.ScaleValue}] = cs
	}

	for _, s := range sorted {
		r.Scales = append(r.Scales, s.Name)
	}
	for _, id := range critOrder {
		c := criteria[id]
		row := Row{Name: c.Name, Description: deref(c.Description)}
		for _, s := range sorted {
			cs := cells[key{id, s.ID}]
			row.Cells = append(row.Cells, Cell{Description: deref(cs.Description), Value: cs.Value})
		}
		r.Criteria = append(r.Criteria, row)
	}
	return r
}

// ToGrid lays the rubric out with one column per scale.
func (r Rubric) ToGrid() xlsx.Grid {
	columns := []string{cell.CriterionColumn}
	for _, s := range r.Scales {
		columns = append(columns, s+cell.Suffix)
	}
	g := xlsx.NewGrid(columns...)

	for _, c := range r.Criteria {
		row := []string{cell.FormatCriterionLabel(c.Name, c.Description)}
		for _, sc := range c.Cells {
			row = append(row, cell.FormatCell(sc.Description, sc.Value))
		}
		g.AddRow(row...)
	}
	return g
}

// FromGrid reads a rubric named name from g. Scale columns are those whose
// header ends in cell.Suffix. Names longer than Turnitin allows are truncated
// with a warning in w; scales whose truncated names collide are merged into
// the first.
func FromGrid(g xlsx.Grid, name string, w *cell.Warnings) (Rubric, error) {
	critCol, err := g.RequireColumn(cell.CriterionColumn)
	if err != nil {
		return Rubric{}, err
	}

	r := Rubric{Name: cell.Truncate("Rubric name", name, cell.MaxRubricName, w)}

	var scaleCols []int
	seen := make(map[string]bool)
	for i, col := range g.Columns {
		if i == critCol || !strings.HasSuffix(col, cell.Suffix) {
			continue
		}
		scale := cell.Truncate("Scale name", strings.TrimSuffix(col, cell.Suffix), cell.MaxScaleName, w)
		if seen[scale] {
			continue
		}
		seen[scale] = true
		r.Scales = append(r.Scales, scale)
		scaleCols = append(scaleCols, i)
	}

	for i := range g.Rows {
		critName, desc := cell.ParseCriterionLabel(g.Cell(i, critCol))
		row := Row{
			Name:        cell.Truncate("Criterion name", critName, cell.MaxCriterionName, w),
			Description: desc,
		}
		for _, col := range scaleCols {
			d, v := cell.ParseCell(g.Cell(i, col))
			row.Cells = append(row.Cells, Cell{Description: d, Value: v})
		}
		r.Criteria = append(r.Criteria, row)
	}
	return r, nil
}

// Document assigns identifiers from seq and builds the RBC document. Every
// criterion references one cell per scale.
func (r Rubric) Document(seq *ids.Sequence) Document {
	doc := Document{
		RubricCriterion:      []Criterion{},
		RubricScale:          []Scale{},
		RubricCriterionScale: []CriterionScale{},
	}

	scaleIDs := make([]ID, len(r.Scales))
	for i, name := range r.Scales {
		scaleIDs[i] = ID(seq.NextScale())
		doc.RubricScale = append(doc.RubricScale, Scale{
			ID:       scaleIDs[i],
			Num:      i + 1,
			Position: i + 1,
			Name:     name,
			Rubric:   rubricID,
		})
	}

	for i, c := range r.Criteria {
		critID := ID(seq.NextCriterion())
		cellIDs := []ID{}
		for j := range r.Scales {
			var sc Cell
			if j < len(c.Cells) {
				sc = c.Cells[j]
			}
			value := sc.Value
			if value.IsEmpty() {
				value = cell.Int(0)
			}
			csID := ID(seq.NextCell())
			cellIDs = append(cellIDs, csID)
			doc.RubricCriterionScale = append(doc.RubricCriterionScale, CriterionScale{
				Criterion:   critID,
				ScaleValue:  scaleIDs[j],
				Description: optional(sc.Description),
				Value:       value,
				ID:          csID,
			})
		}
		doc.RubricCriterion = append(doc.RubricCriterion, Criterion{
			ID:              critID,
			Rubric:          rubricID,
			Name:            c.Name,
			Description:     optional(c.Description),
			CriterionScales: cellIDs,
			Position:        i + 1,
			Num:             i + 1,
		})
	}

	record := RubricRecord{
		Criterion:          []ID{},
		ID:                 rubricID,
		ScoringMethod:      scoringMethod,
		Name:               r.Name,
		CriterionScalesAll: []ID{},
		ScaleValues:        scaleIDs,
		CVLoaded:           cvLoaded,
	}
	for _, c := range doc.RubricCriterion {
		record.Criterion = append(record.Criterion, c.ID)
	}
	for _, cs := range doc.RubricCriterionScale {
		record.CriterionScalesAll = append(record.CriterionScalesAll, cs.ID)
	}
	doc.Rubric = []RubricRecord{record}
	return doc
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
