package seq

import (
	"iter"
	"slices"
)

// Equal is the default element equality for comparable types.
func Equal[T comparable](a, b T) bool {
	return a == b
}

// First returns the first element, if any.
func First[T any](it Iterable[T]) (T, bool) {
	for x := range it.All() {
		return x, true
	}
	var zero T
	return zero, false
}

// Only returns the single element of it, or ErrNotOnly.
func Only[T any](it Iterable[T]) (T, error) {
	var (
		result T
		found  bool
	)
	for x := range it.All() {
		if found {
			var zero T
			return zero, ErrNotOnly
		}
		result, found = x, true
	}
	if !found {
		return result, ErrNotOnly
	}
	return result, nil
}

// Has reports whether some element equals v under eq.
func Has[T any](it Iterable[T], v T, eq func(a, b T) bool) bool {
	for x := range it.All() {
		if eq(x, v) {
			return true
		}
	}
	return false
}

// Find returns the first element matching pred.
func Find[T any](it Iterable[T], pred func(T) bool) (T, bool) {
	for x := range it.All() {
		if pred(x) {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// Every reports whether pred holds for all elements.
// An empty sequence yields false, not true.
func Every[T any](it Iterable[T], pred func(T) bool) bool {
	n := 0
	for x := range it.All() {
		n++
		if !pred(x) {
			return false
		}
	}
	return n > 0
}

// Some reports whether pred holds for at least one element.
func Some[T any](it Iterable[T], pred func(T) bool) bool {
	_, ok := Find(it, pred)
	return ok
}

// ForEach calls f for every element in order.
func ForEach[T any](it Iterable[T], f func(T)) {
	for x := range it.All() {
		f(x)
	}
}

// Reduce folds the sequence from the left, starting with acc.
func Reduce[T, A any](it Iterable[T], acc A, f func(A, T) A) A {
	for x := range it.All() {
		acc = f(acc, x)
	}
	return acc
}

// Map returns a lazy view applying f to each element of it.
// The view keeps the source's length when the source is Sized.
func Map[T, R any](it Iterable[T], f func(T) R) View[R] {
	s := func(yield func(R) bool) {
		for x := range it.All() {
			if !yield(f(x)) {
				return
			}
		}
	}
	if sz, ok := it.(Sized[T]); ok {
		if v, isView := it.(View[T]); isView && !v.HasLen() {
			return Func[R](s)
		}
		return Counted[R](s, sz.Len)
	}
	return Func[R](s)
}

// Filter returns a lazy view over the elements of it matching pred.
func Filter[T any](it Iterable[T], pred func(T) bool) View[T] {
	return Func[T](func(yield func(T) bool) {
		for x := range it.All() {
			if pred(x) && !yield(x) {
				return
			}
		}
	})
}

// Collect materialises the sequence into a slice.
func Collect[T any](it Iterable[T]) []T {
	return slices.Collect(it.All())
}

// Count returns the number of elements, using Len when available.
func Count[T any](it Iterable[T]) int {
	if sz, ok := it.(Sized[T]); ok {
		return sz.Len()
	}
	n := 0
	for range it.All() {
		n++
	}
	return n
}

// IsEmpty reports whether the sequence has no elements.
func IsEmpty[T any](it Iterable[T]) bool {
	if sz, ok := it.(Sized[T]); ok {
		return sz.Len() == 0
	}
	_, ok := First(it)
	return !ok
}

// SameSeq reports whether a and b hold equal elements in the same order.
func SameSeq[T any](a, b Iterable[T], eq func(x, y T) bool) bool {
	if knownLen(a) >= 0 && knownLen(b) >= 0 && knownLen(a) != knownLen(b) {
		return false
	}
	nextA, stopA := iter.Pull(a.All())
	defer stopA()
	nextB, stopB := iter.Pull(b.All())
	defer stopB()
	for {
		x, okA := nextA()
		y, okB := nextB()
		if !okA || !okB {
			return okA == okB
		}
		if !eq(x, y) {
			return false
		}
	}
}

// knownLen returns the length of it when it is cheap to compute, otherwise -1.
func knownLen[T any](it Iterable[T]) int {
	if v, ok := it.(View[T]); ok {
		if !v.HasLen() {
			return -1
		}
		return v.Len()
	}
	if sz, ok := it.(Sized[T]); ok {
		return sz.Len()
	}
	return -1
}
