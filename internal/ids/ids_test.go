package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	s := NewSequence()
	assert.Equal(t, int64(1_000_000), s.NextScale())
	assert.Equal(t, int64(1_000_001), s.NextScale())
	assert.Equal(t, int64(2_000_000), s.NextCriterion())
	assert.Equal(t, int64(3_000_000), s.NextCell())
	assert.Equal(t, int64(3_000_001), s.NextCell())

	// a fresh sequence is independent of earlier ones
	other := NewSequence()
	assert.Equal(t, int64(1_000_000), other.NextScale())
	assert.Equal(t, int64(1_000_002), s.NextScale())
}

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, "urn:uuid:"+a, URN(a))
}

func TestPlaceholder(t *testing.T) {
	c := Placeholder(0)
	assert.GreaterOrEqual(t, len(c), 6)
	assert.Equal(t, c, Placeholder(0), "stable for the same ordinals")
	assert.NotEqual(t, c, Placeholder(1))
	assert.NotEqual(t, Placeholder(0, 1), Placeholder(1, 0))
	assert.True(t, strings.HasPrefix(PlaceholderURI(c), "urn:rubric:placeholder:"))
}
