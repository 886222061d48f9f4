package event

import "sync"

// Keeper owns the listeners registered on its behalf.
//
// The registry only references listeners weakly, so something else has to keep
// them reachable: the keeper does, through a count-based retain table. A
// subscription stays live while its keeper is reachable and is reclaimed once the
// keeper is collected. Keepers are usually stored in the struct that wants the
// updates, or held by a caller for the scope of the subscription.
//
// The zero Keeper is ready to use.
type Keeper struct {
	mu   sync.Mutex
	refs map[any]int
}

// NewKeeper creates a new keeper.
func NewKeeper() *Keeper {
	return &Keeper{}
}

// Retained returns the number of distinct values held by the keeper.
func (k *Keeper) Retained() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.refs)
}

// retain adds one strong reference to v.
func (k *Keeper) retain(v any) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.refs == nil {
		k.refs = make(map[any]int)
	}
	k.refs[v]++
}

// release drops one strong reference to v.
func (k *Keeper) release(v any) {
	k.mu.Lock()
	defer k.mu.Unlock()

	n := k.refs[v] - 1
	if n <= 0 {
		delete(k.refs, v)
		return
	}
	k.refs[v] = n
}
