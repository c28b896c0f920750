package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Kinds(t *testing.T) {
	v, err := Decode(`[null, true, false, 1.5, "s", [], {"a": 1}]`)
	require.NoError(t, err)
	require.True(t, v.IsArray())
	require.Equal(t, 7, v.Len())

	assert.Equal(t, Null, v.Index(0).Kind())
	b, ok := v.Index(1).Bool()
	assert.True(t, ok)
	assert.True(t, b)
	b, ok = v.Index(2).Bool()
	assert.True(t, ok)
	assert.False(t, b)
	n, ok := v.Index(3).Num()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, n, 1e-9)
	s, ok := v.Index(4).Str()
	assert.True(t, ok)
	assert.Equal(t, "s", s)
	assert.True(t, v.Index(5).IsArray())
	assert.Equal(t, 0, v.Index(5).Len())
	assert.True(t, v.Index(6).IsObject())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(`[1, 2`)
	require.Error(t, err)

	_, err = Decode("   ")
	require.Error(t, err)
}

func TestDecode_StringEscapes(t *testing.T) {
	v, err := Decode(`["a\"b", "café", "x=y"]`)
	require.NoError(t, err)
	assert.Equal(t, `a"b`, v.Index(0).StrOr(""))
	assert.Equal(t, "café", v.Index(1).StrOr(""))
	assert.Equal(t, "x=y", v.Index(2).StrOr(""))
}

func TestValue_AccessorsAreTotal(t *testing.T) {
	v := NewArray(NewString("a"), NewNumber(2))

	assert.True(t, v.Index(-1).IsNull())
	assert.True(t, v.Index(99).IsNull())
	assert.True(t, v.Index(0).Index(0).IsNull())
	assert.True(t, v.At(5, 2, 1).IsNull())
	assert.Nil(t, v.Index(0).Items())
	assert.Nil(t, v.Members())
	assert.True(t, v.Field("x").IsNull())

	_, ok := v.Index(0).Num()
	assert.False(t, ok)
	_, ok = v.Index(1).Str()
	assert.False(t, ok)
	_, ok = v.Bool()
	assert.False(t, ok)
	assert.Equal(t, "fallback", v.Index(1).StrOr("fallback"))
}

func TestValue_At(t *testing.T) {
	v, err := Decode(`[null, [null, null, "addr", null, "", [null, null, 51.5, -0.1]]]`)
	require.NoError(t, err)

	lat, ok := v.At(1, 5, 2).Num()
	require.True(t, ok)
	assert.InDelta(t, 51.5, lat, 1e-9)
	assert.Equal(t, "addr", v.At(1, 2).StrOr(""))
	assert.Equal(t, v, v.At())
}

func TestValue_ObjectOrderAndField(t *testing.T) {
	v, err := Decode(`{"b": 1, "a": "x", "b": 2}`)
	require.NoError(t, err)

	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "b", members[0].Key)
	assert.Equal(t, "a", members[1].Key)

	n, ok := v.Field("b").Num()
	require.True(t, ok)
	assert.InDelta(t, 1.0, n, 1e-9)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "bool", Bool.String())
	assert.Equal(t, "number", Number.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "array", Array.String())
	assert.Equal(t, "object", Object.String())
}
