package hash

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/event/eventtest"
)

type intPair = Pair[int, string]

func pairs(keys ...int) []intPair {
	out := make([]intPair, 0, len(keys))
	for _, k := range keys {
		out = append(out, intPair{Key: k, Value: strconv.Itoa(k)})
	}
	return out
}

func kv(k int, v string) intPair {
	return intPair{Key: k, Value: v}
}

func fill(t testing.TB, keys ...int) *Map[int, string] {
	t.Helper()
	m := NewMap[int, string](Config[string]{})
	m.PutAll(slices.Values(pairs(keys...)))
	require.Equal(t, len(keys), m.Len())
	return m
}

// assertChange compares a snapshot with an expected one, ignoring the order of
// elements inside each batch.
func assertChange[T any](t *testing.T, want, got *eventtest.Snapshot[T]) {
	t.Helper()
	require.NotNil(t, got, "no change published")
	assert.Zero(t, got.Earlier, "more than one change published")
	assert.Equal(t, want.HasCleared, got.HasCleared)
	assert.Equal(t, want.Cleared, got.Cleared)
	assertBatch(t, "removed", want.Removed, got.Removed)
	assertBatch(t, "added", want.Added, got.Added)
}

func assertBatch[T any](t *testing.T, name string, want, got *eventtest.Batch[T]) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, name)
		return
	}
	require.NotNil(t, got, name)
	assert.Equal(t, want.At, got.At, name)
	assert.ElementsMatch(t, want.Elements, got.Elements, name)
}

func TestMapPut(t *testing.T) {
	m := NewMap[int, string](Config[string]{})
	c := eventtest.New[intPair](m)

	old, replaced := m.Put(1, "a")
	assert.False(t, replaced)
	assert.Empty(t, old)
	assertChange(t, eventtest.Added(event.Unpositioned, kv(1, "a")), c.Get())

	old, replaced = m.Put(1, "b")
	assert.True(t, replaced)
	assert.Equal(t, "a", old)
	assertChange(t, eventtest.Replaced(event.Unpositioned, kv(1, "a"), kv(1, "b")), c.Get())

	old, replaced = m.Put(1, "b")
	assert.True(t, replaced)
	assert.Equal(t, "b", old)
	assert.Nil(t, c.Get())

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.True(t, m.HasKey(1))
	assert.True(t, m.Contains(kv(1, "b")))
	assert.False(t, m.Contains(kv(1, "a")))
	assert.False(t, m.Contains(kv(2, "b")))
}

func TestMapPutAll(t *testing.T) {
	m := NewMap[int, string](Config[string]{})
	c := eventtest.New[intPair](m)

	assert.Equal(t, 0, m.PutAll(slices.Values([]intPair(nil))))
	assert.Nil(t, c.Get())

	assert.Equal(t, 3, m.PutAll(slices.Values(pairs(1, 2, 3))))
	assertChange(t, eventtest.Added(event.Unpositioned, pairs(1, 2, 3)...), c.Get())

	in := []intPair{kv(2, "two"), kv(3, "3"), kv(4, "4")}
	assert.Equal(t, 3, m.PutAll(slices.Values(in)))
	assertChange(t, &eventtest.Snapshot[intPair]{
		Removed: &eventtest.Batch[intPair]{Elements: pairs(2), At: event.Unpositioned},
		Added:   &eventtest.Batch[intPair]{Elements: []intPair{kv(2, "two"), kv(4, "4")}, At: event.Unpositioned},
	}, c.Get())

	assert.Equal(t, 4, m.PutAll(m.All()))
	assert.Nil(t, c.Get())
	assert.Equal(t, 4, m.Len())
}

func TestMapReplace(t *testing.T) {
	m := fill(t, 1, 2, 3)
	c := eventtest.New[intPair](m)

	m.Replace(slices.Values(pairs(7, 8)))
	assertChange(t, &eventtest.Snapshot[intPair]{
		Cleared:    3,
		HasCleared: true,
		Added:      &eventtest.Batch[intPair]{Elements: pairs(7, 8), At: event.Unpositioned},
	}, c.Get())
	assert.ElementsMatch(t, pairs(7, 8), m.Pairs())

	m.Replace(slices.Values([]intPair(nil)))
	assertChange(t, eventtest.Cleared[intPair](2), c.Get())

	m.Replace(slices.Values(pairs(5)))
	assertChange(t, eventtest.Added(event.Unpositioned, pairs(5)...), c.Get())

	m.Clear()
	c.Get()
	m.Replace(slices.Values([]intPair(nil)))
	assert.Nil(t, c.Get())
}

func TestMapClearAndRemove(t *testing.T) {
	m := fill(t, 1, 2, 3)
	c := eventtest.New[intPair](m)

	v, ok := m.RemoveKey(2)
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assertChange(t, eventtest.Removed(event.Unpositioned, pairs(2)...), c.Get())

	_, ok = m.RemoveKey(2)
	assert.False(t, ok)
	assert.Nil(t, c.Get())

	m.Clear()
	assertChange(t, eventtest.Cleared[intPair](2), c.Get())
	assert.True(t, m.IsEmpty())

	m.Clear()
	assert.Nil(t, c.Get())
}

func TestMapDrop(t *testing.T) {
	m := fill(t, 1, 2, 3, 4, 5, 6)
	c := eventtest.New[intPair](m)

	n := m.Drop(func(p intPair) bool { return p.Key%2 == 0 })
	assert.Equal(t, 3, n)

	changes := c.Take()
	require.Len(t, changes, 3)
	var removed []intPair
	for _, ch := range changes {
		require.NotNil(t, ch.Removed)
		assert.Nil(t, ch.Added)
		assert.Equal(t, event.Unpositioned, ch.Removed.At)
		removed = append(removed, ch.Removed.Elements...)
	}
	assert.ElementsMatch(t, pairs(2, 4, 6), removed)
	assert.ElementsMatch(t, pairs(1, 3, 5), m.Pairs())
}

func TestMapViewsAreLive(t *testing.T) {
	m := fill(t, 1, 2)
	keys, values := m.Keys(), m.Values()

	m.Put(3, "3")
	assert.Equal(t, 3, keys.Len())
	assert.ElementsMatch(t, []int{1, 2, 3}, slices.Collect(keys.All()))
	assert.ElementsMatch(t, []string{"1", "2", "3"}, slices.Collect(values.All()))
}

func TestMapSubscribeReplays(t *testing.T) {
	m := NewMap[int, string](Config[string]{})
	keeper := event.NewKeeper()

	var got []eventtest.Snapshot[intPair]
	record := func(ch event.Change[intPair]) { got = append(got, eventtest.Materialise(ch)) }

	h := m.Subscribe(keeper, record)
	require.Len(t, got, 1)
	assert.Equal(t, *eventtest.Cleared[intPair](0), got[0])
	m.Unsubscribe(h)

	m.PutAll(slices.Values(pairs(1, 2)))
	got = nil
	m.Subscribe(keeper, record)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Added)
	assert.Equal(t, 0, got[0].Added.At)
	assert.ElementsMatch(t, pairs(1, 2), got[0].Added.Elements)
}

func TestMapSharesRegistry(t *testing.T) {
	reg := event.NewListeners()
	m := NewMap[int, string](Config[string]{Events: []event.Option{event.WithRegistry(reg)}})
	assert.Same(t, reg, m.Registry())

	c := eventtest.New[intPair](m)
	defer c.Close()
	assert.Equal(t, 1, m.Listeners())
}
