// Package hash provides observable unordered collections backed by Go maps.
//
// Map and Set publish the same event.Change values as the ordered tree
// collections, with every batch positioned at event.Unpositioned: iteration
// order is unspecified, so no element has a rank. Bulk operations publish at
// most one change, naming exactly the elements that were removed and added.
package hash
