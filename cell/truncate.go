package cell

import "fmt"

// Upload limits enforced by Turnitin.
const (
	MaxRubricName    = 30
	MaxScaleName     = 25
	MaxCriterionName = 13
)

// Warnings collects non-fatal data-quality messages for one conversion.
type Warnings []string

func (w *Warnings) Add(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// Truncate shortens s to max characters. When it does, a warning naming the
// field and both strings is recorded in w (if w is non-nil).
func Truncate(field, s string, max int, w *Warnings) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	t := string(r[:max])
	if w != nil {
		w.Add("%s truncated: '%s' -> '%s'", field, s, t)
	}
	return t
}
