package eventtest

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// list is a minimal observable slice.
type list struct {
	*event.Observable[int]
	items []int
}

func (l *list) All() iter.Seq[int] {
	return seq.Of(l.items...).All()
}

func (l *list) Len() int {
	return len(l.items)
}

func (l *list) push(v int) {
	l.items = append(l.items, v)
	l.Publish(event.Add(seq.Of(v), len(l.items)-1))
}

func newList() *list {
	l := &list{}
	l.Observable = event.NewObservable[int](l, event.WithRegistry(event.NewListeners()))
	return l
}

func TestCaptureGet(t *testing.T) {
	l := newList()
	c := New[int](l)
	assert.Nil(t, c.Get())

	l.push(1)
	assert.Equal(t, Added(0, 1), c.Get())
	assert.Nil(t, c.Get())
}

func TestCaptureGetCountsEarlierChanges(t *testing.T) {
	l := newList()
	c := New[int](l)

	l.push(1)
	l.push(2)
	got := c.Get()
	assert.Equal(t, 1, got.Earlier)
	assert.NotEqual(t, Added(1, 2), got)

	got.Earlier = 0
	assert.Equal(t, Added(1, 2), got)
}

func TestCaptureTake(t *testing.T) {
	l := newList()
	c := New[int](l)

	l.push(1)
	l.push(2)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []Snapshot[int]{*Added(0, 1), *Added(1, 2)}, c.Take())
	assert.Equal(t, 0, c.Len())

	c.Close()
	l.push(3)
	assert.Nil(t, c.Get())
}
