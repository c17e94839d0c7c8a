// Package rbc maps Turnitin RBC rubric exports to and from the spreadsheet
// grid. In an RBC rubric every criterion has exactly one cell per scale.
package rbc

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/aerissecure/rubricconvert/cell"
)

// Document is the JSON layout of an .rbc file.
type Document struct {
	Rubric               []RubricRecord   `json:"Rubric"`
	RubricCriterion      []Criterion      `json:"RubricCriterion"`
	RubricScale          []Scale          `json:"RubricScale"`
	RubricCriterionScale []CriterionScale `json:"RubricCriterionScale"`
}

// RubricRecord is the single top-level rubric entry.
type RubricRecord struct {
	TotalPoints                   *float64 `json:"total_points"`
	Criterion                     []ID     `json:"criterion"`
	ID                            ID       `json:"id"`
	ScoringMethod                 int      `json:"scoring_method"`
	Name                          string   `json:"name"`
	DistributeCriterionPercentage int      `json:"distribute_criterion_percentage"`
	RubricGroup                   *ID      `json:"rubric_group"`
	IsStarred                     int      `json:"is_starred"`
	Deleted                       int      `json:"deleted"`
	CriterionScalesAll            []ID     `json:"criterion_scales_all"`
	ScaleValues                   []ID     `json:"scale_values"`
	PapersScored                  int      `json:"papers_scored"`
	Owner                         int      `json:"owner"`
	CVLoaded                      string   `json:"cv_loaded"`
	Description                   *string  `json:"description"`
}

type Criterion struct {
	Value           int     `json:"value"`
	ID              ID      `json:"id"`
	Rubric          ID      `json:"rubric"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	CriterionScales []ID    `json:"criterion_scales"`
	Position        int     `json:"position"`
	PreviousVersion *ID     `json:"previous_version"`
	Num             int     `json:"num"`
}

type Scale struct {
	ID       ID     `json:"id"`
	Num      int    `json:"num"`
	Position int    `json:"position"`
	Value    int    `json:"value"`
	Name     string `json:"name"`
	Rubric   ID     `json:"rubric"`
}

// CriterionScale is the cell at the crossing of one criterion and one scale.
type CriterionScale struct {
	Criterion   ID         `json:"criterion"`
	ScaleValue  ID         `json:"scale_value"`
	Description *string    `json:"description"`
	Value       cell.Value `json:"value"`
	ID          ID         `json:"id"`
}

// ID is an RBC record identifier. Exports carry integers; numeric strings are
// accepted on read.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		raw = n.String()
	}
	n, err := parseID(raw)
	if err != nil {
		return err
	}
	*id = n
	return nil
}

// parseID accepts integers, including integral exponent forms such as 1e6.
// Fractional or out of range ids are rejected so distinct records never
// collapse onto one id.
func parseID(s string) (ID, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return ID(f), nil
}

// Missing collection errors.
var (
	ErrMissingCriteria = errors.New("document has no RubricCriterion collection")
	ErrMissingScales   = errors.New("document has no RubricScale collection")
	ErrMissingCells    = errors.New("document has no RubricCriterionScale collection")
)

// Decode reads an RBC document. The three criterion/scale/cell collections
// must be present, though they may be empty.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(err, "cannot decode rbc document")
	}
	switch {
	case doc.RubricCriterion == nil:
		return Document{}, ErrMissingCriteria
	case doc.RubricScale == nil:
		return Document{}, ErrMissingScales
	case doc.RubricCriterionScale == nil:
		return Document{}, ErrMissingCells
	}
	return doc, nil
}

// Encode writes doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Name returns the rubric name, or "N/A" when the document carries none.
func (d Document) Name() string {
	if len(d.Rubric) == 0 {
		return "N/A"
	}
	return d.Rubric[0].Name
}
