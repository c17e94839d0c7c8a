package rbc

import (
	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/internal/ids"
)

// Example returns the starter rubric offered to users creating a rubric from
// scratch: two criteria over four scales.
func Example() Document {
	r := Rubric{
		Name:   "Example Rubric",
		Scales: []string{"Excellent", "Good", "Needs Improvement", "Absent"},
		Criteria: []Row{
			{
				Name:        "Analysis",
				Description: "Quality and depth of analysis.",
				Cells: []Cell{
					{"Insightful and thorough", cell.Int(5)},
					{"Adequate analysis", cell.Int(4)},
					{"Superficial", cell.Int(2)},
					{"", cell.Int(0)},
				},
			},
			{
				Name:        "Writing",
				Description: "Clarity and structure.",
				Cells: []Cell{
					{"Clear, well-organised", cell.Int(3)},
					{"Generally clear", cell.Int(2)},
					{"Difficult to follow", cell.Int(1)},
					{"", cell.Int(0)},
				},
			},
		},
	}
	return r.Document(ids.NewSequence())
}
