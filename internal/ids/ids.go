// Package ids hands out the identifiers written into converted rubrics.
package ids

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids"
)

// Seeds for the three RBC identifier ranges.
const (
	ScaleSeed     = 1_000_000
	CriterionSeed = 2_000_000
	CellSeed      = 3_000_000
)

// Sequence allocates RBC identifiers for a single conversion. Each call
// builds its own Sequence; identifiers only need to be unique within one
// document.
type Sequence struct {
	scale     int64
	criterion int64
	cell      int64
}

func NewSequence() *Sequence {
	return &Sequence{scale: ScaleSeed, criterion: CriterionSeed, cell: CellSeed}
}

func (s *Sequence) NextScale() int64 {
	id := s.scale
	s.scale++
	return id
}

func (s *Sequence) NextCriterion() int64 {
	id := s.criterion
	s.criterion++
	return id
}

func (s *Sequence) NextCell() int64 {
	id := s.cell
	s.cell++
	return id
}

// New returns a random identifier for IMS documents.
func New() string {
	return uuid.NewString()
}

// URN builds the URI form of an identifier.
func URN(id string) string {
	return "urn:uuid:" + id
}

const placeholderSalt = "rubric legacy placeholder"

// Placeholder derives a stable short identifier from ordinal positions, e.g.
// (criterion) or (criterion, level). It falls back to the dotted ordinals
// if encoding fails.
func Placeholder(ordinals ...int) string {
	hd := hashids.NewData()
	hd.Salt = placeholderSalt
	hd.MinLength = 6
	h, err := hashids.NewWithData(hd)
	if err == nil {
		if e, err := h.Encode(ordinals); err == nil {
			return e
		}
	}
	parts := make([]string, len(ordinals))
	for i, o := range ordinals {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ".")
}

// PlaceholderURI is the URI paired with Placeholder.
func PlaceholderURI(id string) string {
	return "urn:rubric:placeholder:" + id
}
