package event

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/orderly/internal/seq"
)

// Observable is the subscription half of an observable collection.
// Collections embed a *Observable built over their own contents and call Publish
// once per mutation.
type Observable[T any] struct {
	id       uuid.UUID
	source   seq.Sized[T]
	registry *Listeners
	logger   *slog.Logger
}

// NewObservable creates the subscription state for the collection source.
func NewObservable[T any](source seq.Sized[T], opts ...Option) *Observable[T] {
	config := defaultObservableConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.id == uuid.Nil {
		config.id = uuid.New()
	}

	return &Observable[T]{
		id:       config.id,
		source:   source,
		registry: config.registry,
		logger:   config.logger,
	}
}

// Registry returns the registry the collection's listeners are stored in.
func (o *Observable[T]) Registry() *Listeners {
	return o.registry
}

// ID returns the collection identity.
func (o *Observable[T]) ID() uuid.UUID {
	return o.id
}

// Subscribe replays the collection's current state to l and then registers l
// for every future change. The registration lives while keeper is reachable or
// until Unsubscribe is called.
func (o *Observable[T]) Subscribe(keeper *Keeper, l Listener[T]) Handle {
	if o.source.Len() == 0 {
		l(Cleared[T](0))
	} else {
		l(Add(o.source, 0))
	}

	h := o.registry.Add(keeper, &Subscriber{listener: l}, o.id)
	o.logger.Debug("subscribed", "collection", o.id, "handle", uint64(h))
	return h
}

// Unsubscribe removes the registration h.
// Handles that are unknown or belong to another collection are ignored.
func (o *Observable[T]) Unsubscribe(h Handle) {
	group, ok := o.registry.GroupOf(h)
	if !ok || group != o.id {
		return
	}
	o.registry.Delete(h)
	o.logger.Debug("unsubscribed", "collection", o.id, "handle", uint64(h))
}

// Publish delivers c to every live listener of the collection.
// Zero changes are dropped. Listener panics are not recovered.
func (o *Observable[T]) Publish(c Change[T]) {
	if c.IsZero() {
		return
	}
	for s := range o.registry.Group(o.id) {
		if l, ok := s.listener.(Listener[T]); ok {
			l(c)
		}
	}
}

// Listeners returns the number of live registrations for the collection.
func (o *Observable[T]) Listeners() int {
	return o.registry.GroupLen(o.id)
}
