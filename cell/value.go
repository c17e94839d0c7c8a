package cell

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindText
)

// Value is the point value of a scale cell or level. Numeric values keep
// integer form when they have no fractional part. Bracket text that is not a
// number is kept verbatim as KindText.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a decimal value, normalised to Int when it is integral.
func Float(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return Int(int64(f))
	}
	return Value{kind: KindFloat, f: f}
}

// Text returns a raw, non-numeric value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// ParseNumber converts s to a numeric Value when possible. Anything that does
// not parse as a finite number is returned verbatim as Text.
func ParseNumber(s string) Value {
	t := strings.TrimSpace(s)
	if t == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Text(s)
	}
	return Float(f)
}

func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether no value was given at all.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsZero reports whether v is the numeric default 0.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	}
	return false
}

// Number returns the numeric value and whether v is numeric.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	}
	return ""
}

// MarshalJSON writes numbers as JSON numbers, text as a string and an empty
// value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt, KindFloat:
		return []byte(v.String()), nil
	case KindText:
		return json.Marshal(v.s)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a number, a string or null. Numeric strings are
// converted to numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ParseNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Float(f)
	return nil
}
