package cell

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDesc string
		want     Value
	}{
		{"empty", "", "", Int(0)},
		{"whitespace", "   \n ", "", Int(0)},
		{"desc and value", "Insightful [5]", "Insightful", Int(5)},
		{"value only", "[1]", "", Int(1)},
		{"desc only", "Adequate analysis", "Adequate analysis", Int(0)},
		{"empty bracket", "Superficial []", "Superficial", Int(0)},
		{"decimal", "Half marks [2.5]", "Half marks", Float(2.5)},
		{"integral decimal", "Full [4.0]", "Full", Int(4)},
		{"negative", "Penalty [-2]", "Penalty", Int(-2)},
		{"no space before bracket", "Tight[3]", "Tight", Int(3)},
		{"padded", "  Spaced out   [ 7 ]  ", "Spaced out", Int(7)},
		{"non numeric kept", "Grade [A+]", "Grade", Text("A+")},
		{"non numeric kept raw", "Grade [ A+ ]", "Grade", Text(" A+ ")},
		{"last bracket wins", "See [note] here [4]", "See [note] here", Int(4)},
		{"unclosed bracket", "Open [3", "Open [3", Int(0)},
		{"multi line", "First line\nsecond line [6]", "First line\nsecond line", Int(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, v := ParseCell(tt.in)
			assert.Equal(t, tt.wantDesc, desc)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "Insightful [5]", FormatCell("Insightful", Int(5)))
	assert.Equal(t, "Insightful", FormatCell("Insightful", Value{}))
	assert.Equal(t, "[1]", FormatCell("", Int(1)))
	assert.Equal(t, "", FormatCell("", Value{}))
	assert.Equal(t, "", FormatCell("", Int(0)))
	assert.Equal(t, "Absent [0]", FormatCell("Absent", Int(0)))
	assert.Equal(t, "Half [0.5]", FormatCell("Half", Float(0.5)))
	assert.Equal(t, "Grade [B]", FormatCell("Grade", Text("B")))
	assert.Equal(t, "See [rubric] [0]", FormatCell("See [rubric]", Value{}))
	assert.Equal(t, "See [rubric] [2]", FormatCell("See [rubric]", Int(2)))
}

func TestFormatBracketedDescription(t *testing.T) {
	desc, v := ParseCell(FormatCell("See [rubric]", Value{}))
	assert.Equal(t, "See [rubric]", desc)
	assert.Equal(t, Int(0), v)
}

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		v    Value
	}{
		{"Insightful and thorough", Int(5)},
		{"Absent", Int(0)},
		{"", Int(3)},
		{"Needs work", Float(1.25)},
		{"Letter grade", Text("A-")},
		{"", Int(0)},
	}
	for _, c := range cases {
		desc, v := ParseCell(FormatCell(c.desc, c.v))
		assert.Equal(t, c.desc, desc, "description for %q", c.desc)
		assert.Equal(t, c.v, v, "value for %q", c.desc)
	}
}

func TestCriterionLabel(t *testing.T) {
	name, desc := ParseCriterionLabel("Analysis\nDeep dive")
	assert.Equal(t, "Analysis", name)
	assert.Equal(t, "Deep dive", desc)

	name, desc = ParseCriterionLabel("  Writing  \r\n Clarity\n\nand structure \n")
	assert.Equal(t, "Writing", name)
	assert.Equal(t, "Clarity\n\nand structure", desc)

	name, desc = ParseCriterionLabel("")
	assert.Empty(t, name)
	assert.Empty(t, desc)

	assert.Equal(t, "Analysis", FormatCriterionLabel("Analysis", "  "))
	assert.Equal(t, "Analysis\nDeep dive", FormatCriterionLabel("Analysis", " Deep dive\n"))

	name, desc = ParseCriterionLabel(FormatCriterionLabel("Writing", "Clarity and structure."))
	assert.Equal(t, "Writing", name)
	assert.Equal(t, "Clarity and structure.", desc)
}

func TestTruncate(t *testing.T) {
	var w Warnings
	long := strings.Repeat("abcdefghij", 4)

	got := Truncate("Rubric name", long, MaxRubricName, &w)
	assert.Equal(t, long[:30], got)
	require.Len(t, w, 1)
	assert.Equal(t, "Rubric name truncated: '"+long+"' -> '"+long[:30]+"'", w[0])

	assert.Equal(t, "Short", Truncate("Scale name", "Short", MaxScaleName, &w))
	assert.Len(t, w, 1)

	// characters, not bytes
	assert.Equal(t, "ééééé", Truncate("Criterion name", "éééééé", 5, nil))
}

func TestValueJSON(t *testing.T) {
	var vs []Value
	require.NoError(t, json.Unmarshal([]byte(`[5, 2.5, "3", "high", null, 4.0]`), &vs))
	assert.Equal(t, []Value{Int(5), Float(2.5), Int(3), Text("high"), {}, Int(4)}, vs)

	out, err := json.Marshal([]Value{Int(5), Float(2.5), Text("high"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[5, 2.5, "high", null]`, string(out))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, Int(1000), ParseNumber("1e3"))
	assert.Equal(t, Text("inf"), ParseNumber("inf"))
	assert.Equal(t, Text("n/a"), ParseNumber("n/a"))
	assert.True(t, ParseNumber("").IsEmpty())
}
