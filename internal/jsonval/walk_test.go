package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_DocumentOrder(t *testing.T) {
	v, err := Decode(`["a", ["b", ["c"]], {"k": "d"}, "e"]`)
	require.NoError(t, err)

	var seen []string
	var depths []int
	Walk(v, func(n Value, depth int) Action {
		if s, ok := n.Str(); ok {
			seen = append(seen, s)
			depths = append(depths, depth)
		}
		return Continue
	})

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
	assert.Equal(t, []int{1, 2, 3, 2, 1}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	v, err := Decode(`[["skip", "me"], "keep"]`)
	require.NoError(t, err)

	var seen []string
	Walk(v, func(n Value, depth int) Action {
		if depth == 1 && n.IsArray() {
			return SkipChildren
		}
		if s, ok := n.Str(); ok {
			seen = append(seen, s)
		}
		return Continue
	})

	assert.Equal(t, []string{"keep"}, seen)
}

func TestWalk_Stop(t *testing.T) {
	v, err := Decode(`["a", "b", "c"]`)
	require.NoError(t, err)

	count := 0
	completed := Walk(v, func(n Value, _ int) Action {
		if n.IsString() {
			count++
			if count == 2 {
				return Stop
			}
		}
		return Continue
	})

	assert.False(t, completed)
	assert.Equal(t, 2, count)
}

func TestFind_FirstInDocumentOrder(t *testing.T) {
	v, err := Decode(`[[1, [2, "deep"]], "shallow"]`)
	require.NoError(t, err)

	got, ok := Find(v, func(n Value) bool { return n.IsString() })
	require.True(t, ok)
	assert.Equal(t, "deep", got.StrOr(""))
}

func TestFind_NoMatch(t *testing.T) {
	v, err := Decode(`[1, 2, [3]]`)
	require.NoError(t, err)

	got, ok := Find(v, func(n Value) bool { return n.IsString() })
	assert.False(t, ok)
	assert.True(t, got.IsNull())
}

func TestFindMatch_ReturnsExtraction(t *testing.T) {
	v, err := Decode(`[null, ["x", 1], ["name", 42]]`)
	require.NoError(t, err)

	type pair struct {
		name string
		n    float64
	}
	got, ok := FindMatch(v, func(n Value) (pair, bool) {
		s, okS := n.Index(0).Str()
		num, okN := n.Index(1).Num()
		if !okS || !okN || num < 10 {
			return pair{}, false
		}
		return pair{name: s, n: num}, true
	})

	require.True(t, ok)
	assert.Equal(t, "name", got.name)
	assert.InDelta(t, 42.0, got.n, 1e-9)
}

func TestFind_IncludesRoot(t *testing.T) {
	v := NewArray(NewNumber(1))
	got, ok := Find(v, func(n Value) bool { return n.IsArray() })
	require.True(t, ok)
	assert.Equal(t, 1, got.Len())
}
