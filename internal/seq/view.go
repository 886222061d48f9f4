package seq

import "iter"

// Iterable is the minimal capability: a sequence that can be traversed any number
// of times.
type Iterable[T any] interface {
	// All returns an iterator over the elements in order.
	All() iter.Seq[T]
}

// Sized is an Iterable that knows its length without a traversal.
type Sized[T any] interface {
	Iterable[T]

	// Len returns the number of elements.
	Len() int
}

// View is a lazy, re-iterable sequence.
// The zero View is empty.
type View[T any] struct {
	seq  iter.Seq[T]
	size func() int
}

// Func wraps an iterator function. The function is called again on every traversal.
func Func[T any](s iter.Seq[T]) View[T] {
	return View[T]{seq: s}
}

// Counted wraps an iterator function whose length is reported by n.
func Counted[T any](s iter.Seq[T], n func() int) View[T] {
	return View[T]{seq: s, size: n}
}

// Of returns a view over a snapshot of items.
func Of[T any](items ...T) View[T] {
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	return View[T]{
		seq: func(yield func(T) bool) {
			for _, x := range snapshot {
				if !yield(x) {
					return
				}
			}
		},
		size: func() int { return len(snapshot) },
	}
}

// Empty returns a view with no elements.
func Empty[T any]() View[T] {
	return View[T]{}
}

// All implements Iterable.
func (v View[T]) All() iter.Seq[T] {
	if v.seq == nil {
		return func(func(T) bool) {}
	}
	return v.seq
}

// Len implements Sized. Views of unknown length are counted by a full traversal.
func (v View[T]) Len() int {
	if v.size != nil {
		return v.size()
	}
	n := 0
	for range v.All() {
		n++
	}
	return n
}

// HasLen reports whether Len is answered without a traversal.
func (v View[T]) HasLen() bool {
	return v.size != nil || v.seq == nil
}

// Include selects whether the bounds of a range are inclusive.
type Include struct {
	Start bool
	End   bool
}

// Common bound inclusivity settings.
var (
	InIn = Include{Start: true, End: true}
	InEx = Include{Start: true, End: false}
	ExIn = Include{Start: false, End: true}
	ExEx = Include{Start: false, End: false}
)

// String returns the interval notation of the bounds, e.g. "[)".
func (i Include) String() string {
	s := "("
	if i.Start {
		s = "["
	}
	if i.End {
		return s + "]"
	}
	return s + ")"
}
