package metrics

import (
	"github.com/dshills/orderly/internal/event"
)

// Source is a collection that can be tracked.
type Source[T any] interface {
	Subscribe(keeper *event.Keeper, l event.Listener[T]) event.Handle
	Unsubscribe(h event.Handle)
	Len() int
}

// Tracker keeps a collection's metrics current until Close is called.
type Tracker[T any] struct {
	name   string
	src    Source[T]
	keeper *event.Keeper
	handle event.Handle
}

// Track starts recording the changes of src under the label name.
// The returned Tracker must be kept reachable for as long as tracking should
// continue.
func Track[T any](src Source[T], name string) *Tracker[T] {
	t := &Tracker[T]{name: name, src: src, keeper: event.NewKeeper()}
	replayed := false
	t.handle = src.Subscribe(t.keeper, func(c event.Change[T]) {
		if replayed {
			t.record(c)
		}
		replayed = true
		collectionSize.WithLabelValues(t.name).Set(float64(t.src.Len()))
	})
	return t
}

// Close stops tracking and removes the collection's size gauge.
func (t *Tracker[T]) Close() {
	t.src.Unsubscribe(t.handle)
	collectionSize.DeleteLabelValues(t.name)
}

func (t *Tracker[T]) record(c event.Change[T]) {
	changesPublished.WithLabelValues(t.name, Kind(c)).Inc()
	if c.HasCleared {
		elementsCleared.WithLabelValues(t.name).Add(float64(c.Cleared))
	}
	if c.Removed != nil {
		elementsRemoved.WithLabelValues(t.name).Add(float64(c.Removed.Elements.Len()))
	}
	if c.Added != nil {
		elementsAdded.WithLabelValues(t.name).Add(float64(c.Added.Elements.Len()))
	}
}

// Kind classifies a change for the kind label.
func Kind[T any](c event.Change[T]) string {
	switch {
	case c.HasCleared && c.Added != nil:
		return "reset"
	case c.HasCleared:
		return "clear"
	case c.Removed != nil && c.Added != nil:
		return "replace"
	case c.Removed != nil:
		return "remove"
	case c.Added != nil:
		return "add"
	default:
		return "none"
	}
}
