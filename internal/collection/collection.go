package collection

import "iter"

// Collection is the read side of the capability.
type Collection[T comparable] interface {
	Size() int
	IsEmpty() bool
	Contains(v T) bool
	ContainsAll(vs []T) bool
	All() iter.Seq[T]
}

// MutableCollection adds the mutators. Add and AddAll report whether the
// collection changed.
type MutableCollection[T comparable] interface {
	Collection[T]
	Add(v T) bool
	AddAll(vs []T) bool
	Remove(v T) bool
	Clear()
}

// HashSet keeps unique elements in insertion order.
type HashSet[T comparable] struct {
	index map[T]int
	items []T
}

func NewHashSet[T comparable](values ...T) *HashSet[T] {
	s := &HashSet[T]{index: make(map[T]int)}
	s.AddAll(values)
	return s
}

func (s *HashSet[T]) Size() int { return len(s.items) }

func (s *HashSet[T]) IsEmpty() bool { return len(s.items) == 0 }

func (s *HashSet[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *HashSet[T]) ContainsAll(vs []T) bool {
	for _, v := range vs {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s *HashSet[T]) All() iter.Seq[T] { return seq(s.items) }

func (s *HashSet[T]) Add(v T) bool {
	if s.Contains(v) {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

func (s *HashSet[T]) AddAll(vs []T) bool {
	changed := false
	for _, v := range vs {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

func (s *HashSet[T]) Remove(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, v)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *HashSet[T]) Clear() {
	s.items = nil
	s.index = make(map[T]int)
}

// ArrayList keeps every element, duplicates included.
type ArrayList[T comparable] struct {
	items []T
}

func NewArrayList[T comparable](values ...T) *ArrayList[T] {
	l := &ArrayList[T]{}
	l.AddAll(values)
	return l
}

func (l *ArrayList[T]) Size() int { return len(l.items) }

func (l *ArrayList[T]) IsEmpty() bool { return len(l.items) == 0 }

func (l *ArrayList[T]) Contains(v T) bool {
	for _, item := range l.items {
		if item == v {
			return true
		}
	}
	return false
}

func (l *ArrayList[T]) ContainsAll(vs []T) bool {
	for _, v := range vs {
		if !l.Contains(v) {
			return false
		}
	}
	return true
}

func (l *ArrayList[T]) All() iter.Seq[T] { return seq(l.items) }

func (l *ArrayList[T]) Add(v T) bool {
	l.items = append(l.items, v)
	return true
}

func (l *ArrayList[T]) AddAll(vs []T) bool {
	l.items = append(l.items, vs...)
	return len(vs) > 0
}

// Remove drops the first occurrence of v.
func (l *ArrayList[T]) Remove(v T) bool {
	for i, item := range l.items {
		if item == v {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *ArrayList[T]) Clear() { l.items = nil }

func seq[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Values drains c into a slice in iteration order.
func Values[T comparable](c Collection[T]) []T {
	out := make([]T, 0, c.Size())
	for v := range c.All() {
		out = append(out, v)
	}
	return out
}
