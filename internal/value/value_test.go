package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualIsTagAware(t *testing.T) {
	trueBool := NewScalar(TagBool, "True", Span{})
	lowerTrue := NewScalar(TagBool, "true", Span{})
	stringTrue := NewScalar(TagString, "true", Span{})

	assert.True(t, Equal(trueBool, lowerTrue), "expected \"True\" and \"true\" bools to compare equal")
	assert.False(t, Equal(trueBool, stringTrue), "expected bool true and string \"true\" to compare unequal")
}

func TestEqualDistinguishesIntFromString(t *testing.T) {
	intOne := NewScalar(TagInt, "1", Span{})
	stringOne := NewScalar(TagString, "1", Span{})
	assert.False(t, Equal(intOne, stringOne), "expected int 1 and string \"1\" to compare unequal")
}

func TestEqualFloatNormalisesRepresentation(t *testing.T) {
	a := NewScalar(TagFloat, "1.50", Span{})
	b := NewScalar(TagFloat, "1.5", Span{})
	assert.True(t, Equal(a, b), "expected 1.50 and 1.5 to compare equal as floats")
}

func TestEqualTreatsNilAndEmptyAsEqual(t *testing.T) {
	assert.True(t, Equal(nil, NewEmpty(Span{})), "expected nil and an explicit Empty value to compare equal")
}

func TestEqualMappingIgnoresKeyOrder(t *testing.T) {
	a := NewMapping([]MappingEntry{
		{Key: NewScalar(TagString, "a", Span{}), Value: NewScalar(TagInt, "1", Span{})},
		{Key: NewScalar(TagString, "b", Span{}), Value: NewScalar(TagInt, "2", Span{})},
	}, Span{})
	b := NewMapping([]MappingEntry{
		{Key: NewScalar(TagString, "b", Span{}), Value: NewScalar(TagInt, "2", Span{})},
		{Key: NewScalar(TagString, "a", Span{}), Value: NewScalar(TagInt, "1", Span{})},
	}, Span{})
	assert.True(t, Equal(a, b), "expected mapping equality to be independent of key order")
}

func TestGetFindsByStringKey(t *testing.T) {
	m := NewMapping([]MappingEntry{
		{Key: NewScalar(TagString, "name", Span{}), Value: NewScalar(TagString, "flux", Span{})},
	}, Span{})
	v, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, "flux", v.Raw)

	_, ok = m.Get("missing")
	assert.False(t, ok, "expected Get(\"missing\") to report not-found")
}

func TestSizeCountsAllNodes(t *testing.T) {
	seq := NewSequence([]*Value{
		NewScalar(TagInt, "1", Span{}),
		NewScalar(TagInt, "2", Span{}),
	}, Span{})
	// 1 for the sequence itself + 2 scalars.
	assert.Equal(t, 3, Size(seq))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil), "expected nil to be Empty")
	assert.True(t, IsEmpty(NewEmpty(Span{})), "expected an explicit Empty value to be Empty")
	assert.False(t, IsEmpty(NewScalar(TagInt, "0", Span{})), "expected scalar 0 to not be Empty")
}
