// Package index provides an observable set of values ordered by a key
// extracted from each value.
//
// An Index is a thin layer over a unique tree.Map from extracted key to value.
// Adding a value whose key is already present replaces the stored value.
// Events published by the underlying map are re-published with the pairs
// mapped to their values, so positions and batching are exactly those of the
// map.
package index
