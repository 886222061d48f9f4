package event

import (
	"iter"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderly/internal/seq"
)

// bag is a minimal unordered observable collection.
type bag struct {
	*Observable[string]
	items []string
}

func newBag(r *Listeners, items ...string) *bag {
	b := &bag{items: items}
	b.Observable = NewObservable[string](b, WithRegistry(r))
	return b
}

func (b *bag) All() iter.Seq[string] { return slices.Values(b.items) }
func (b *bag) Len() int             { return len(b.items) }

func (b *bag) add(s string) {
	b.items = append(b.items, s)
	b.Publish(Add[string](seq.Of(s), Unpositioned))
}

type recorder struct {
	changes []Change[string]
}

func (r *recorder) listen(c Change[string]) {
	r.changes = append(r.changes, c)
}

func TestObservable_SubscribeReplaysEmpty(t *testing.T) {
	b := newBag(NewListeners())
	rec := &recorder{}
	k := NewKeeper()

	h := b.Subscribe(k, rec.listen)
	assert.NotZero(t, h)
	require.Len(t, rec.changes, 1)
	assert.True(t, rec.changes[0].HasCleared)
	assert.Equal(t, 0, rec.changes[0].Cleared)
	assert.Nil(t, rec.changes[0].Added)
	assert.Equal(t, 1, b.Listeners())
}

func TestObservable_SubscribeReplaysContents(t *testing.T) {
	b := newBag(NewListeners(), "x", "y")
	rec := &recorder{}
	k := NewKeeper()

	b.Subscribe(k, rec.listen)
	require.Len(t, rec.changes, 1)
	c := rec.changes[0]
	assert.False(t, c.HasCleared)
	require.NotNil(t, c.Added)
	assert.Equal(t, 0, c.Added.At)
	assert.Equal(t, []string{"x", "y"}, seq.Collect[string](c.Added.Elements))
}

func TestObservable_PublishAndUnsubscribe(t *testing.T) {
	b := newBag(NewListeners())
	first, second := &recorder{}, &recorder{}
	k := NewKeeper()

	h1 := b.Subscribe(k, first.listen)
	b.Subscribe(k, second.listen)

	b.add("a")
	require.Len(t, first.changes, 2)
	require.Len(t, second.changes, 2)
	assert.Equal(t, Unpositioned, first.changes[1].Added.At)

	b.Unsubscribe(h1)
	b.add("b")
	assert.Len(t, first.changes, 2)
	assert.Len(t, second.changes, 3)

	// Removed and unknown handles are ignored.
	b.Unsubscribe(h1)
	b.Unsubscribe(Handle(999))
	assert.Equal(t, 1, b.Listeners())
}

func TestObservable_ForeignHandleIgnored(t *testing.T) {
	shared := NewListeners()
	b1 := newBag(shared)
	b2 := newBag(shared)
	rec := &recorder{}
	k := NewKeeper()

	h := b1.Subscribe(k, rec.listen)
	b2.Unsubscribe(h)
	assert.Equal(t, 1, b1.Listeners())

	b2.add("other")
	assert.Len(t, rec.changes, 1)
	b1.add("mine")
	assert.Len(t, rec.changes, 2)
}

func TestObservable_ZeroChangeNotPublished(t *testing.T) {
	b := newBag(NewListeners())
	rec := &recorder{}
	k := NewKeeper()
	b.Subscribe(k, rec.listen)

	b.Publish(Change[string]{})
	assert.Len(t, rec.changes, 1)
}

func TestObservable_ListenerPanicPropagates(t *testing.T) {
	b := newBag(NewListeners())
	k := NewKeeper()
	calls := 0
	b.Subscribe(k, func(Change[string]) {
		calls++
		if calls > 1 {
			panic("boom")
		}
	})

	assert.PanicsWithValue(t, "boom", func() { b.add("x") })
}

func TestObservable_KeeperReclaimed(t *testing.T) {
	b := newBag(NewListeners())

	func() {
		k := NewKeeper()
		b.Subscribe(k, func(Change[string]) {})
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return b.Listeners() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestObservable_ID(t *testing.T) {
	id := uuid.New()
	b := &bag{}
	b.Observable = NewObservable[string](b, WithID(id), WithRegistry(NewListeners()))
	assert.Equal(t, id, b.ID())

	other := newBag(NewListeners())
	assert.NotEqual(t, uuid.Nil, other.ID())
	assert.NotEqual(t, id, other.ID())
}
