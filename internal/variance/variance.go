package variance

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

var ErrNarrow = errors.New("value does not narrow to requested type")

// Producer is a read-only view: values of T only flow out.
type Producer[T any] interface {
	Len() int
	At(i int) T
	All() iter.Seq[T]
}

// Consumer is a write-only view: values of T only flow in. Reads are typed
// as any and need Narrow to recover a concrete type.
type Consumer[T any] interface {
	Len() int
	Add(v T)
	AtAny(i int) any
}

// Star is the star projection: a producer of unknown element type.
type Star = Producer[any]

// List is an invariant slice-backed container. A *List[T] satisfies both
// Producer[T] and Consumer[T] but never Producer[R] or Consumer[R] for R != T.
type List[T any] struct {
	items []T
}

func NewList[T any](values ...T) *List[T] {
	items := make([]T, len(values))
	copy(items, values)
	return &List[T]{items: items}
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) At(i int) T { return l.items[i] }

func (l *List[T]) AtAny(i int) any { return l.items[i] }

func (l *List[T]) Add(v T) { l.items = append(l.items, v) }

func (l *List[T]) Set(i int, v T) { l.items[i] = v }

func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns a copy of the backing slice.
func (l *List[T]) Values() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Producer narrows the list to its read-only view.
func (l *List[T]) Producer() Producer[T] { return l }

// Consumer narrows the list to its write-only view.
func (l *List[T]) Consumer() Consumer[T] { return l }

type outView[T, R any] struct {
	src   Producer[T]
	widen func(T) R
}

func (o outView[T, R]) Len() int { return o.src.Len() }

func (o outView[T, R]) At(i int) R { return o.widen(o.src.At(i)) }

func (o outView[T, R]) All() iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range o.src.All() {
			if !yield(o.widen(v)) {
				return
			}
		}
	}
}

type inView[T, R any] struct {
	dst   Consumer[R]
	widen func(T) R
}

func (v inView[T, R]) Len() int { return v.dst.Len() }

func (v inView[T, R]) Add(item T) { v.dst.Add(v.widen(item)) }

func (v inView[T, R]) AtAny(i int) any { return v.dst.AtAny(i) }

// Out reads a producer of T as a producer of the supertype R. For an
// interface R the widening func is func(v T) R { return v }, which only
// compiles when T implements R. widen must not be nil.
func Out[T, R any](src Producer[T], widen func(T) R) Producer[R] {
	return outView[T, R]{src: src, widen: widen}
}

// In lets a consumer of the supertype R accept writes of T.
func In[T, R any](dst Consumer[R], widen func(T) R) Consumer[T] {
	return inView[T, R]{dst: dst, widen: widen}
}

// StarOf erases the element type of p.
func StarOf[T any](p Producer[T]) Star {
	return Out(p, func(v T) any { return v })
}

// Copy moves every element of src into dst and returns how many were moved.
// src is read-only-producer and dst is write-only-consumer, so callers can
// pass a container of a subtype as source and one of a supertype as
// destination without converting either container.
func Copy[T, R any](src Producer[T], dst Consumer[R], widen func(T) R) int {
	n := 0
	for v := range src.All() {
		dst.Add(widen(v))
		n++
	}
	return n
}

// CopyOut copies from a producer projection into an invariant list.
func CopyOut[T any](src Producer[T], dst *List[T]) int {
	return Copy(src, dst.Consumer(), Identity[T])
}

// CopyIn copies from an invariant list into a consumer projection.
func CopyIn[T any](src *List[T], dst Consumer[T]) int {
	return Copy(src.Producer(), dst, Identity[T])
}

// Identity is the widening func for identical element types.
func Identity[T any](v T) T { return v }

// Narrow recovers a concrete type from a top-typed read.
func Narrow[T any](v any) (T, error) {
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: have %T, want %s", ErrNarrow, v, reflect.TypeFor[T]())
	}
	return out, nil
}

// Upcast converts v to R through the top type. Use it where no static
// widening func exists; prefer a typed func literal otherwise.
func Upcast[T, R any](v T) (R, error) {
	return Narrow[R](any(v))
}
