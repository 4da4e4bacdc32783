package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddIsExclusive(t *testing.T) {
	u, _ := newTestUniverse(t)
	a := mustScene(t, u, "a")
	b := mustScene(t, u, "b")

	r := NewRegistry()
	assert.False(t, r.Add("", a))
	assert.True(t, r.Add("foo", a))
	assert.False(t, r.Add("foo", b))

	got, ok := r.Lookup("foo")
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestRegistry_EraseEntityRequiresExactMatch(t *testing.T) {
	u, _ := newTestUniverse(t)
	a := mustScene(t, u, "a")
	b := mustScene(t, u, "b")

	r := NewRegistry()
	r.Add("foo", a)
	assert.False(t, r.EraseEntity("foo", b))
	assert.True(t, r.Contains("foo"))
	assert.True(t, r.EraseEntity("foo", a))
	assert.False(t, r.Contains("foo"))

	r.Add("bar", b)
	r.Erase("bar")
	r.Erase("missing")
	assert.Zero(t, r.Len())
}

func TestRegistry_IndexablesShareNamespace(t *testing.T) {
	u, _ := newTestUniverse(t)
	s := mustScene(t, u, "s")
	o := mustObject(t, u, s, "first")

	assert.True(t, s.Registry().IsName("objects"))
	assert.False(t, s.Registry().Contains("objects"))
	assert.False(t, s.Registry().Add("objects", o))

	got, ok := s.Registry().IndexedEntity("objects", 0)
	require.True(t, ok)
	assert.Same(t, o, got)
	_, ok = s.Registry().IndexedEntity("objects", 1)
	assert.False(t, ok)
}

func TestRegistry_Completions(t *testing.T) {
	u, _ := newTestUniverse(t)
	s := mustScene(t, u, "s")
	r := NewRegistry()
	for _, name := range []string{"orange", "orangutan", "apple", "oracle"} {
		r.Add(name, s)
	}

	assert.Equal(t, []string{"oracle", "orange", "orangutan"}, r.Completions("or"))
	assert.Equal(t, 2, r.NumberOfCompletions("oran"))
	assert.Equal(t, "ora", r.Complete("or"))
	assert.Equal(t, "orang", r.Complete("oran"))
	assert.Equal(t, "apple", r.Complete("a"))
	assert.Equal(t, "zz", r.Complete("zz"))
	assert.Equal(t, []string{"apple", "oracle", "orange", "orangutan"}, r.EntityNames())
}
