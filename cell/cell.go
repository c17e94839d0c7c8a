// Package cell implements the text conventions used inside rubric grid cells:
// "description [value]" for scale cells and "name\ndescription" for the
// criterion label cell.
package cell

import (
	"strings"
)

// Suffix ends the header of every scale or level column.
const Suffix = " (desc [value])"

// CriterionColumn is the header of the criterion label column.
const CriterionColumn = "Criterion (name and description)"

// ParseCell splits a scale cell into its description and value. An empty
// description means none was given. Blank cells yield ("", 0).
func ParseCell(text string) (string, Value) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", Int(0)
	}

	desc, token, ok := splitTrailingBracket(t)
	if !ok {
		return t, Int(0)
	}

	v := Int(0)
	if strings.TrimSpace(token) != "" {
		v = ParseNumber(token)
	}
	return desc, v
}

// splitTrailingBracket finds a final "[...]" token. The token is the text
// after the last '[' and must close the string.
func splitTrailingBracket(t string) (string, string, bool) {
	if !strings.HasSuffix(t, "]") {
		return "", "", false
	}
	open := strings.LastIndex(t, "[")
	if open < 0 {
		return "", "", false
	}
	return strings.TrimSpace(t[:open]), t[open+1 : len(t)-1], true
}

// FormatCell is the inverse of ParseCell. A zero value without a description
// formats as an empty cell. A description that already ends in "]" always
// gets a value token, 0 when none is given, so it is not read back as one.
func FormatCell(desc string, v Value) string {
	if v.IsEmpty() && strings.HasSuffix(desc, "]") {
		v = Int(0)
	}
	hasValue := !v.IsEmpty() && !(desc == "" && v.IsZero())
	switch {
	case desc != "" && hasValue:
		return desc + " [" + v.String() + "]"
	case desc != "":
		return desc
	case hasValue:
		return "[" + v.String() + "]"
	}
	return ""
}

// ParseCriterionLabel returns the first line as the name and the remaining
// lines as the description.
func ParseCriterionLabel(text string) (name, desc string) {
	if strings.TrimSpace(text) == "" {
		return "", ""
	}
	lines := splitLines(text)
	name = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		desc = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return name, desc
}

// FormatCriterionLabel is the inverse of ParseCriterionLabel.
func FormatCriterionLabel(name, desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return name
	}
	return name + "\n" + desc
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
