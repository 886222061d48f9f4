// Package tree provides an observable, weight-balanced ordered map.
//
// A Map stores key/value pairs in comparator order in a binary search tree whose
// nodes carry their subtree size (weight). The weights keep the tree balanced -
// siblings never differ by more than roughly 2.5:1 - and double as an order
// statistic index, so positional queries are as cheap as lookups:
//
//   - O(log n) Get, Put, RemoveKey, At, Rank, From/To/Before/After
//   - O(log n + k) Range over k elements
//   - O(n log n) SetCompare, which re-sorts the whole map
//
// Every mutation publishes at most one minimal event.Change describing what
// happened, with positions expressed as ranks:
//
//	m := tree.NewOrdered[int, string]()
//	m.Put(2, "two")                // {added: [2:two] at 0}
//	m.Put(1, "one")                // {added: [1:one] at 0}
//	m.Put(2, "TWO")                // {removed: [2:two] at 1, added: [2:TWO] at 1}
//	m.RemoveKey(1)                 // {removed: [1:one] at 0}
//
// A Map can hold duplicate keys (Config.Duplicates). Equal keys keep their
// insertion order.
//
// Maps are not safe for concurrent mutation, and listeners must not mutate the
// map that is notifying them.
package tree
