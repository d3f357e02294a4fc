package collection

import (
	"iter"

	"github.com/danmuck/capkit/internal/delegate"
	"github.com/danmuck/capkit/internal/variance"
)

// CountingSet forwards the mutable-collection capability to an inner
// collection and overrides add/addAll to count attempted insertions,
// including elements the inner collection ignores as duplicates.
type CountingSet[T comparable] struct {
	d     *delegate.Delegate
	added int
}

// NewCountingSet wraps inner, or a fresh HashSet when inner is nil.
func NewCountingSet[T comparable](inner MutableCollection[T], opts ...delegate.Option) (*CountingSet[T], error) {
	if inner == nil {
		inner = NewHashSet[T]()
	}
	s := &CountingSet[T]{}
	d, err := delegate.New(Capability(), AsBacking(inner), delegate.Overrides{
		OpAdd: func(_ *delegate.Delegate, b delegate.Backing, args delegate.Args) (delegate.Result, error) {
			if _, err := delegate.Arg[T](args, 0); err != nil {
				return nil, err
			}
			s.added++
			return b.Execute(OpAdd, args)
		},
		OpAddAll: func(_ *delegate.Delegate, b delegate.Backing, args delegate.Args) (delegate.Result, error) {
			vs, err := delegate.Arg[[]T](args, 0)
			if err != nil {
				return nil, err
			}
			s.added += len(vs)
			return b.Execute(OpAddAll, args)
		},
	}, opts...)
	if err != nil {
		return nil, err
	}
	s.d = d
	return s, nil
}

// Added is the number of elements passed to Add and AddAll.
func (s *CountingSet[T]) Added() int { return s.added }

func (s *CountingSet[T]) Delegate() *delegate.Delegate { return s.d }

func (s *CountingSet[T]) Add(v T) (bool, error) {
	return result[bool](s.d.Invoke(OpAdd, v))
}

func (s *CountingSet[T]) AddAll(vs []T) (bool, error) {
	return result[bool](s.d.Invoke(OpAddAll, vs))
}

func (s *CountingSet[T]) Remove(v T) (bool, error) {
	return result[bool](s.d.Invoke(OpRemove, v))
}

func (s *CountingSet[T]) Clear() error {
	_, err := s.d.Invoke(OpClear)
	return err
}

func (s *CountingSet[T]) Size() (int, error) {
	return result[int](s.d.Invoke(OpSize))
}

func (s *CountingSet[T]) IsEmpty() (bool, error) {
	return result[bool](s.d.Invoke(OpIsEmpty))
}

func (s *CountingSet[T]) Contains(v T) (bool, error) {
	return result[bool](s.d.Invoke(OpContains, v))
}

func (s *CountingSet[T]) ContainsAll(vs []T) (bool, error) {
	return result[bool](s.d.Invoke(OpContainsAll, vs))
}

// Values drains the forwarded iterator into a slice.
func (s *CountingSet[T]) Values() ([]T, error) {
	it, err := result[iter.Seq[T]](s.d.Invoke(OpIterator))
	if err != nil {
		return nil, err
	}
	var out []T
	for v := range it {
		out = append(out, v)
	}
	return out, nil
}

func (s *CountingSet[T]) Close() error { return s.d.Close() }

func result[R any](res delegate.Result, err error) (R, error) {
	if err != nil {
		var zero R
		return zero, err
	}
	return variance.Narrow[R](res)
}

// Forwarding is the compile-time form of delegation: every method of the
// embedded collection is promoted unless the embedding type redefines it.
type Forwarding[T comparable] struct {
	MutableCollection[T]
}

func (f Forwarding[T]) Inner() MutableCollection[T] { return f.MutableCollection }

// Counting is CountingSet built by embedding instead of a dispatch table.
type Counting[T comparable] struct {
	Forwarding[T]
	added int
}

func NewCounting[T comparable](inner MutableCollection[T]) *Counting[T] {
	if inner == nil {
		inner = NewHashSet[T]()
	}
	return &Counting[T]{Forwarding: Forwarding[T]{MutableCollection: inner}}
}

func (c *Counting[T]) Add(v T) bool {
	c.added++
	return c.MutableCollection.Add(v)
}

func (c *Counting[T]) AddAll(vs []T) bool {
	c.added += len(vs)
	return c.MutableCollection.AddAll(vs)
}

func (c *Counting[T]) Added() int { return c.added }
