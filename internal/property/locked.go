package property

import "sync"

// Locked serialises access to a cell for hosts that share it between
// goroutines. The lock is held for the whole write, including the change
// broadcast, so listeners must read the inner cell rather than the wrapper.
type Locked[V any] struct {
	mu   sync.Mutex
	cell *Cell[V]
}

func NewLocked[V any](cell *Cell[V]) *Locked[V] {
	return &Locked[V]{cell: cell}
}

func (l *Locked[V]) Read() V {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cell.Read()
}

func (l *Locked[V]) Write(v V) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cell.Write(v)
}

// Update applies fn to the current value atomically with respect to other
// callers of the wrapper.
func (l *Locked[V]) Update(fn func(V) V) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cell.Update(fn)
}

// Cell returns the wrapped cell.
func (l *Locked[V]) Cell() *Cell[V] { return l.cell }
