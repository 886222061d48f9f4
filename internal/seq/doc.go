// Package seq provides the read-only capability layer shared by every collection
// in orderly.
//
// A collection only has to offer ordered iteration ([Iterable]) and, optionally, a
// cheap element count ([Sized]). Everything else - membership tests, first/only
// access, lazy map/filter views, folds and sequence equality - is written once as
// free functions over those two interfaces:
//
//	evens := seq.Filter(m.Keys(), func(k int) bool { return k%2 == 0 })
//	total := seq.Reduce(evens, 0, func(acc, k int) int { return acc + k })
//
// Derived views are lazy and re-iterable: every traversal re-evaluates the source,
// so a view built over a live collection always reflects its current contents.
// Nothing is cached.
package seq
