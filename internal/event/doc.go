// Package event provides change notification for orderly's collections.
//
// Every observable collection describes each mutation as a single [Change] and
// hands it to the listeners subscribed to that collection. Listeners are held
// weakly: a subscription lives exactly as long as its [Keeper] is reachable, so a
// component that forgets to unsubscribe does not leak.
//
// # Architecture
//
//	                ┌──────────────────────────────────────┐
//	                │         Observable collection         │
//	                │  - computes a minimal Change          │
//	                │  - Publish(change)                    │
//	                └──────────────────────────────────────┘
//	                                  │ Group(collection ID)
//	                                  ▼
//	                ┌──────────────────────────────────────┐
//	                │              Registry                 │
//	                │  - handle → weak value, weak keeper   │
//	                │  - grouped buckets per collection     │
//	                │  - runtime cleanups drop dead entries │
//	                └──────────────────────────────────────┘
//	                                  │
//	                                  ▼
//	                          Listener(change)
//
// # Change Shape
//
// A Change is either a clear, a removed/added pair, or a clear followed by an
// addition (bulk replacement and re-sorting):
//
//	{cleared: 3}
//	{added: {elements: [5:"5"], at: 4}}
//	{removed: {elements: [5:"5"], at: 4}, added: {elements: [5:"FIVE"], at: 4}}
//	{cleared: 15, added: {elements: <all>, at: 0}}
//
// "at" is the 0-based rank of the first element of the batch, or [Unpositioned]
// for collections without a meaningful order.
//
// # Subscribing
//
//	keeper := event.NewKeeper()
//	h := m.Subscribe(keeper, func(c event.Change[tree.Pair[int, string]]) {
//	    // react
//	})
//	defer m.Unsubscribe(h)
//
// Subscribe replays the current state synchronously before returning: an empty
// collection delivers {cleared: 0}, a non-empty one delivers all of its elements
// as a single addition at 0.
//
// # Reclamation
//
// The registry keeps only weak references. The keeper holds the strong reference
// to the listener. When either becomes unreachable the Go runtime schedules a
// cleanup that removes the registration. Cleanups run on a runtime goroutine at a
// time chosen by the garbage collector, so automatic removal is eventual; call
// Unsubscribe when removal has to happen at a known point.
//
// # Thread Safety
//
// Collections assume a single mutating goroutine and listeners must not mutate the
// collection that is notifying them. The Registry itself is guarded by a mutex
// because runtime cleanups execute concurrently with the owner.
package event
