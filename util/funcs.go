package util

import (
	"iter"
)

func MapIter[A, B any](iter iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// FilterMapIter yields f(elem) for the elements of slice where f reports true.
// The returned sequence can be iterated more than once.
func FilterMapIter[A, B any](slice []A, f func(A) (B, bool)) iter.Seq[B] {
	return func(yield func(B) bool) {
		for _, elem := range slice {
			mapped, ok := f(elem)
			if !ok {
				continue
			}
			if !yield(mapped) {
				return
			}
		}
	}
}

func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}
