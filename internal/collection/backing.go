package collection

import (
	"fmt"

	"github.com/danmuck/capkit/internal/delegate"
)

// Operation names of the mutable-collection capability.
const (
	OpAdd         = "add"
	OpAddAll      = "addAll"
	OpSize        = "size"
	OpIsEmpty     = "isEmpty"
	OpContains    = "contains"
	OpContainsAll = "containsAll"
	OpIterator    = "iterator"
	OpRemove      = "remove"
	OpClear       = "clear"
)

var readOps = []delegate.OperationSpec{
	{Name: OpSize, Description: "number of elements", ReadOnly: true},
	{Name: OpIsEmpty, Description: "true when size is zero", ReadOnly: true},
	{Name: OpContains, Description: "membership test for one element", ReadOnly: true},
	{Name: OpContainsAll, Description: "membership test for every element of a slice", ReadOnly: true},
	{Name: OpIterator, Description: "iter.Seq over the elements", ReadOnly: true},
}

var writeOps = []delegate.OperationSpec{
	{Name: OpAdd, Description: "insert one element"},
	{Name: OpAddAll, Description: "insert every element of a slice"},
	{Name: OpRemove, Description: "remove one element"},
	{Name: OpClear, Description: "remove every element"},
}

// Capability describes the mutable-collection operation set.
func Capability() delegate.Capability {
	ops := make([]delegate.OperationSpec, 0, len(readOps)+len(writeOps))
	ops = append(ops, writeOps...)
	ops = append(ops, readOps...)
	return delegate.Capability{Name: "mutable-collection", Operations: ops}
}

type backing[T comparable] struct {
	read  Collection[T]
	write MutableCollection[T]
}

// AsBacking exposes a typed collection through the dynamic dispatch contract.
func AsBacking[T comparable](c MutableCollection[T]) delegate.Backing {
	return &backing[T]{read: c, write: c}
}

// AsReadOnlyBacking serves only the read operations. A delegate over it must
// override every mutator or construction fails.
func AsReadOnlyBacking[T comparable](c Collection[T]) delegate.Backing {
	return &backing[T]{read: c}
}

func (b *backing[T]) Operations() []delegate.OperationSpec {
	if b.write == nil {
		return readOps
	}
	return Capability().Operations
}

func (b *backing[T]) Execute(op string, args delegate.Args) (delegate.Result, error) {
	switch op {
	case OpSize:
		return b.read.Size(), nil
	case OpIsEmpty:
		return b.read.IsEmpty(), nil
	case OpContains:
		v, err := delegate.Arg[T](args, 0)
		if err != nil {
			return nil, err
		}
		return b.read.Contains(v), nil
	case OpContainsAll:
		vs, err := delegate.Arg[[]T](args, 0)
		if err != nil {
			return nil, err
		}
		return b.read.ContainsAll(vs), nil
	case OpIterator:
		return b.read.All(), nil
	}

	if b.write == nil {
		return nil, fmt.Errorf("%w: %s on read-only backing", delegate.ErrUnknownOperation, op)
	}
	switch op {
	case OpAdd:
		v, err := delegate.Arg[T](args, 0)
		if err != nil {
			return nil, err
		}
		return b.write.Add(v), nil
	case OpAddAll:
		vs, err := delegate.Arg[[]T](args, 0)
		if err != nil {
			return nil, err
		}
		return b.write.AddAll(vs), nil
	case OpRemove:
		v, err := delegate.Arg[T](args, 0)
		if err != nil {
			return nil, err
		}
		return b.write.Remove(v), nil
	case OpClear:
		b.write.Clear()
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", delegate.ErrUnknownOperation, op)
}
