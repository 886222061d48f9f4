package event

import (
	"iter"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"sync"
	"weak"
)

// Handle identifies one registration in a Registry.
// The zero Handle is never issued.
type Handle uint64

// entry is one registration.
type entry[G comparable, V any] struct {
	group  G
	value  weak.Pointer[V]
	keeper weak.Pointer[Keeper]

	// onValue and onKeeper remove the entry when either side is collected.
	onValue  runtime.Cleanup
	onKeeper runtime.Cleanup
}

// Registry is a weak multimap from handles to values, grouped by key.
//
// Values are referenced weakly and kept alive by the Keeper passed to Add. An
// entry disappears on Delete, or automatically once its value or its keeper has
// been garbage collected. It is safe for concurrent use; runtime cleanups call
// into it from their own goroutine.
type Registry[G comparable, V any] struct {
	mu     sync.Mutex
	next   Handle
	byID   map[Handle]*entry[G, V]
	groups map[G]map[Handle]weak.Pointer[V]
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry[G comparable, V any](opts ...RegistryOption) *Registry[G, V] {
	config := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Registry[G, V]{
		byID:   make(map[Handle]*entry[G, V]),
		groups: make(map[G]map[Handle]weak.Pointer[V]),
		logger: config.logger,
	}
}

// Add registers v under group on behalf of keeper and returns its handle.
// The keeper retains v; the registry does not.
func (r *Registry[G, V]) Add(keeper *Keeper, v *V, group G) Handle {
	keeper.retain(v)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	ref := weak.Make(v)
	e := &entry[G, V]{
		group:  group,
		value:  ref,
		keeper: weak.Make(keeper),
	}
	e.onValue = runtime.AddCleanup(v, r.expire, h)
	e.onKeeper = runtime.AddCleanup(keeper, r.expire, h)
	r.byID[h] = e

	bucket := r.groups[group]
	if bucket == nil {
		bucket = make(map[Handle]weak.Pointer[V])
		r.groups[group] = bucket
	}
	bucket[h] = ref

	return h
}

// Delete removes the registration h. Unknown handles are ignored.
func (r *Registry[G, V]) Delete(h Handle) {
	r.mu.Lock()
	e := r.unlink(h)
	r.mu.Unlock()

	if e == nil {
		return
	}
	e.onValue.Stop()
	e.onKeeper.Stop()

	k := e.keeper.Value()
	v := e.value.Value()
	if k != nil && v != nil {
		k.release(v)
	}
}

// GroupOf returns the group h was registered under.
func (r *Registry[G, V]) GroupOf(h Handle) (G, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[h]
	if !ok {
		var zero G
		return zero, false
	}
	return e.group, true
}

// Group returns the live values registered under group, in registration order.
// Values whose weak reference has expired are skipped.
func (r *Registry[G, V]) Group(group G) iter.Seq[*V] {
	return func(yield func(*V) bool) {
		r.mu.Lock()
		bucket := r.groups[group]
		handles := slices.Sorted(maps.Keys(bucket))
		refs := make([]weak.Pointer[V], len(handles))
		for i, h := range handles {
			refs[i] = bucket[h]
		}
		r.mu.Unlock()

		for _, ref := range refs {
			if v := ref.Value(); v != nil {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// All returns every live value in registration order.
func (r *Registry[G, V]) All() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		r.mu.Lock()
		handles := slices.Sorted(maps.Keys(r.byID))
		refs := make([]weak.Pointer[V], len(handles))
		for i, h := range handles {
			refs[i] = r.byID[h].value
		}
		r.mu.Unlock()

		for _, ref := range refs {
			if v := ref.Value(); v != nil {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Len returns the number of registrations, including any whose value has been
// collected but whose cleanup has not run yet.
func (r *Registry[G, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byID)
}

// GroupLen returns the number of registrations under group.
func (r *Registry[G, V]) GroupLen(group G) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.groups[group])
}

// expire is the runtime cleanup for a collected value or keeper.
func (r *Registry[G, V]) expire(h Handle) {
	r.mu.Lock()
	e := r.unlink(h)
	r.mu.Unlock()

	if e == nil {
		return
	}
	e.onValue.Stop()
	e.onKeeper.Stop()
	r.logger.Debug("listener reclaimed", "handle", uint64(h))
}

// unlink removes h from both indexes. Caller must hold r.mu.
func (r *Registry[G, V]) unlink(h Handle) *entry[G, V] {
	e, ok := r.byID[h]
	if !ok {
		return nil
	}
	delete(r.byID, h)

	if bucket := r.groups[e.group]; bucket != nil {
		delete(bucket, h)
		if len(bucket) == 0 {
			delete(r.groups, e.group)
		}
	}
	return e
}
