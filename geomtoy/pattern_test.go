package geomtoy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePattern(t *testing.T) {
	valid := []string{"x", "x|y", "x&y&items", AnyWildcard, AllWildcard}
	for _, raw := range valid {
		assert.NoError(t, validatePattern(raw, testEvents), raw)
	}

	invalid := []string{"z", "x|z", "x&z", "x|y&items", "x||y", "&x", ""}
	for _, raw := range invalid {
		assert.Error(t, validatePattern(raw, testEvents), raw)
	}
}

func TestResolvePattern(t *testing.T) {
	p := resolvePattern(AnyWildcard, testEvents)
	assert.Equal(t, opOr, p.op)
	assert.Equal(t, []string{"x", "y", "items"}, p.names)

	p = resolvePattern(AllWildcard, testEvents)
	assert.Equal(t, opAnd, p.op)

	// a single declared event still resolves to a composite
	one := DeclareEvents("v")
	p = resolvePattern(AnyWildcard, one)
	assert.Equal(t, opOr, p.op)
	assert.Equal(t, []string{"v"}, p.names)

	p = resolvePattern("x", testEvents)
	assert.Equal(t, opSingle, p.op)

	// names are hashed once when the pattern is resolved
	p = resolvePattern("x|items", testEvents)
	assert.Equal(t, []uint64{nameHash("x"), nameHash("items")}, p.hashes)
	assert.Equal(t, []uint64{nameHash("x"), nameHash("y"), nameHash("items")}, resolvePattern(AllWildcard, testEvents).hashes)
}

func TestPatternEach(t *testing.T) {
	w, _ := newTestWorld()
	a := newTarget(w, "a")
	cache := NewEventCache()
	cache.Add(SimpleEvent(a, "y"))
	cache.Add(SimpleEvent(a, "x"))

	collect := func(raw string) []Event {
		var out []Event
		resolvePattern(raw, testEvents).each(raw, a, cache, func(e Event) bool {
			out = append(out, e)
			return true
		})
		return out
	}

	t.Run("or takes the first match in pattern order", func(t *testing.T) {
		got := collect("x|y")
		require.Len(t, got, 1)
		assert.Equal(t, KindComposite, got[0].Kind())
		require.Len(t, got[0].Sources(), 1)
		assert.Equal(t, "x", got[0].Sources()[0].Name())
	})

	t.Run("and needs every name", func(t *testing.T) {
		assert.Empty(t, collect("x&items"))
		got := collect("x&y")
		require.Len(t, got, 1)
		assert.True(t, got[0].Has("x"))
		assert.True(t, got[0].Has("y"))
	})

	t.Run("single", func(t *testing.T) {
		got := collect("y")
		require.Len(t, got, 1)
		assert.Equal(t, KindSimple, got[0].Kind())
		assert.Empty(t, collect("items"))
	})
}

func TestDeclareEvents(t *testing.T) {
	s := DeclareEvents("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, s.Names())
	assert.Equal(t, "a|b", s.AnyPattern())
	assert.Equal(t, "a&b", s.AllPattern())
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, 2, s.Len())

	assert.Panics(t, func() { DeclareEvents("a|b") })
	assert.Panics(t, func() { DeclareEvents("") })
	assert.Panics(t, func() { DeclareEvents(AnyWildcard) })

	var empty *EventSet
	assert.False(t, empty.Has("a"))
	assert.Zero(t, empty.Len())
}
