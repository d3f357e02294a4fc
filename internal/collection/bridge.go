package collection

import "github.com/danmuck/capkit/internal/variance"

// Snapshot copies c into an invariant list, in iteration order.
func Snapshot[T comparable](c Collection[T]) *variance.List[T] {
	return variance.NewList(Values(c)...)
}

type sink[T comparable] struct {
	c MutableCollection[T]
}

// Sink exposes c as a write-only consumer so it can be the destination of
// variance.Copy.
func Sink[T comparable](c MutableCollection[T]) variance.Consumer[T] {
	return sink[T]{c: c}
}

func (s sink[T]) Len() int { return s.c.Size() }

func (s sink[T]) Add(v T) { s.c.Add(v) }

// AtAny indexes a snapshot of the collection, so an out-of-range i fails
// the same way variance.List does.
func (s sink[T]) AtAny(i int) any {
	return Values[T](s.c)[i]
}
