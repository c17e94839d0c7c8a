package ims

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/aerissecure/rubricconvert/cell"
	"github.com/aerissecure/rubricconvert/internal/ids"
)

// CFRubric is the IMS CASE rubric document.
type CFRubric struct {
	Identifier         string        `json:"Identifier"`
	URI                string        `json:"URI"`
	Title              string        `json:"Title"`
	Description        string        `json:"description"`
	LastChangeDateTime string        `json:"lastChangeDateTime"`
	Criteria           []CFCriterion `json:"CFRubricCriterion"`
}

type CFCriterion struct {
	Identifier         string    `json:"Identifier"`
	URI                string    `json:"URI"`
	Position           int       `json:"position"`
	Description        string    `json:"Description"`
	LastChangeDateTime string    `json:"lastChangeDateTime"`
	Levels             []CFLevel `json:"CFRubricCriterionLevels"`
}

type CFLevel struct {
	Score              cell.Value `json:"score"`
	Identifier         string     `json:"Identifier"`
	URI                string     `json:"URI"`
	LastChangeDateTime string     `json:"lastChangeDateTime"`
	Position           int        `json:"position"`
	Description        string     `json:"Description"`
}

// CFDocument builds a CFRubric with fresh identifiers, stamped with now.
// Positions are 0-based and follow the rubric's order.
func (r Rubric) CFDocument(now time.Time) CFRubric {
	stamp := now.UTC().Format(time.RFC3339)
	docID := ids.New()
	doc := CFRubric{
		Identifier:         docID,
		URI:                ids.URN(docID),
		Title:              r.Title,
		LastChangeDateTime: stamp,
		Criteria:           make([]CFCriterion, 0, len(r.Criteria)),
	}

	for ci, c := range r.Criteria {
		critID := ids.New()
		crit := CFCriterion{
			Identifier:         critID,
			URI:                ids.URN(critID),
			Position:           ci,
			Description:        cell.FormatCriterionLabel(c.Name, c.Description),
			LastChangeDateTime: stamp,
			Levels:             make([]CFLevel, 0, len(c.Levels)),
		}
		for li, l := range c.Levels {
			levelID := ids.New()
			crit.Levels = append(crit.Levels, CFLevel{
				Score:              score(l.Score),
				Identifier:         levelID,
				URI:                ids.URN(levelID),
				LastChangeDateTime: stamp,
				Position:           li,
				Description:        l.Description,
			})
		}
		doc.Criteria = append(doc.Criteria, crit)
	}
	return doc
}

// LegacyRubric is the older criteria/levels IMS layout.
type LegacyRubric struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Criteria    []LegacyCriterion `json:"criteria"`
}

type LegacyCriterion struct {
	ID          string        `json:"id"`
	URI         string        `json:"uri"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Position    int           `json:"position"`
	Levels      []LegacyLevel `json:"levels"`
}

type LegacyLevel struct {
	ID          string     `json:"id"`
	URI         string     `json:"uri"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      cell.Value `json:"points"`
	Position    int        `json:"position"`
}

// LegacyDocument builds the legacy layout. Criterion and level identifiers
// are placeholders derived from their positions, and level titles are
// guessed from the description text, so the result does not read back
// exactly.
func (r Rubric) LegacyDocument() LegacyRubric {
	doc := LegacyRubric{
		ID:       ids.New(),
		Title:    r.Title,
		Type:     "Rubric",
		Criteria: make([]LegacyCriterion, 0, len(r.Criteria)),
	}

	for ci, c := range r.Criteria {
		critID := ids.Placeholder(ci)
		crit := LegacyCriterion{
			ID:          critID,
			URI:         ids.PlaceholderURI(critID),
			Title:       c.Name,
			Description: c.Description,
			Position:    ci,
			Levels:      make([]LegacyLevel, 0, len(c.Levels)),
		}
		for li, l := range c.Levels {
			levelID := ids.Placeholder(ci, li)
			title, desc := SplitLevelTitle(l.Description)
			crit.Levels = append(crit.Levels, LegacyLevel{
				ID:          levelID,
				URI:         ids.PlaceholderURI(levelID),
				Title:       title,
				Description: desc,
				Points:      score(l.Score),
				Position:    li,
			})
		}
		doc.Criteria = append(doc.Criteria, crit)
	}
	return doc
}

// SplitLevelTitle guesses a level title from its description. Text before
// the first colon is the title and the rest the description; without a colon
// the first word is the title and the description is kept whole.
func SplitLevelTitle(desc string) (title, rest string) {
	desc = strings.TrimSpace(desc)
	if i := strings.Index(desc, ":"); i >= 0 {
		return strings.TrimSpace(desc[:i]), strings.TrimSpace(desc[i+1:])
	}
	if fields := strings.Fields(desc); len(fields) > 0 {
		return fields[0], desc
	}
	return "", ""
}

func score(v cell.Value) cell.Value {
	if v.IsEmpty() {
		return cell.Int(0)
	}
	return v
}

// Encode writes an IMS document as indented JSON.
func Encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
