package property

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danmuck/capkit/internal/changebus"
	"github.com/danmuck/capkit/internal/observability"
)

// Kind selects the read/write policy of a Cell.
type Kind int

const (
	Plain Kind = iota
	Computed
	Lazy
	Observable
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Computed:
		return "computed"
	case Lazy:
		return "lazy"
	case Observable:
		return "observable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is the initial content of a cell: a value or a func.
type Source[V any] struct {
	value  V
	fn     func() V
	isFunc bool
}

// Value is the source for plain and observable cells.
func Value[V any](v V) Source[V] {
	return Source[V]{value: v}
}

// Func is the source for computed and lazy cells.
func Func[V any](fn func() V) Source[V] {
	return Source[V]{fn: fn, isFunc: true}
}

// Cell is one intercepted slot. It is not safe for concurrent use.
type Cell[V any] struct {
	name        string
	kind        Kind
	value       V
	compute     func() V
	initialized bool
	frozen      bool
	validator   func(V) error
	writer      func(V) error
	bus         *changebus.Bus
}

type Option[V any] func(*Cell[V])

// WithValidator installs a check run before every store. A non-nil result
// rejects the write with a *RejectedValueError.
func WithValidator[V any](fn func(V) error) Option[V] {
	return func(c *Cell[V]) { c.validator = fn }
}

// WithWriter gives computed and lazy cells a write path.
func WithWriter[V any](fn func(V) error) Option[V] {
	return func(c *Cell[V]) { c.writer = fn }
}

// WithBus attaches the bus an observable cell reports to. An observable cell
// without a bus stores writes silently; other kinds keep the reference but
// never notify.
func WithBus[V any](bus *changebus.Bus) Option[V] {
	return func(c *Cell[V]) { c.bus = bus }
}

// WithFrozenAfterInit makes a lazy cell reject writes once initialized.
func WithFrozenAfterInit[V any]() Option[V] {
	return func(c *Cell[V]) { c.frozen = true }
}

func New[V any](name string, kind Kind, src Source[V], opts ...Option[V]) (*Cell[V], error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCell)
	}
	c := &Cell[V]{name: name, kind: kind}
	for _, opt := range opts {
		opt(c)
	}

	switch kind {
	case Plain, Observable:
		if src.isFunc {
			return nil, fmt.Errorf("%w: %s cell %s needs a value source", ErrInvalidCell, kind, name)
		}
		c.value = src.value
	case Computed, Lazy:
		if !src.isFunc || src.fn == nil {
			return nil, fmt.Errorf("%w: %s cell %s needs a func source", ErrInvalidCell, kind, name)
		}
		c.compute = src.fn
	default:
		return nil, fmt.Errorf("%w: unknown kind %s", ErrInvalidCell, kind)
	}

	if c.frozen && kind != Lazy {
		return nil, fmt.Errorf("%w: only lazy cells can be frozen", ErrInvalidCell)
	}
	return c, nil
}

func NewPlain[V any](name string, initial V, opts ...Option[V]) (*Cell[V], error) {
	return New(name, Plain, Value(initial), opts...)
}

func NewComputed[V any](name string, compute func() V, opts ...Option[V]) (*Cell[V], error) {
	return New(name, Computed, Func(compute), opts...)
}

func NewLazy[V any](name string, init func() V, opts ...Option[V]) (*Cell[V], error) {
	return New(name, Lazy, Func(init), opts...)
}

func NewObservable[V any](name string, initial V, bus *changebus.Bus, opts ...Option[V]) (*Cell[V], error) {
	return New(name, Observable, Value(initial), slices.Concat(opts, []Option[V]{WithBus[V](bus)})...)
}

func (c *Cell[V]) Name() string { return c.name }

func (c *Cell[V]) Kind() Kind { return c.kind }

// Initialized reports whether a lazy cell has produced its value. Other
// kinds always report true.
func (c *Cell[V]) Initialized() bool {
	return c.kind != Lazy || c.initialized
}

// Read returns the current value. Computed cells recompute on every read;
// lazy cells compute once.
func (c *Cell[V]) Read() V {
	switch c.kind {
	case Computed:
		return c.compute()
	case Lazy:
		if !c.initialized {
			c.value = c.compute()
			c.initialized = true
		}
		return c.value
	default:
		return c.value
	}
}

// Write runs the kind's write path. For observable cells the broadcast
// happens after the store, so a *changebus.NotifyError means the value did
// change and some listeners failed.
func (c *Cell[V]) Write(v V) error {
	err := c.write(v)
	observability.RecordPropertyWrite(c.kind.String(), writeOutcome(err))
	return err
}

// Update is a read-modify-write through Write.
func (c *Cell[V]) Update(fn func(V) V) error {
	return c.Write(fn(c.Read()))
}

func (c *Cell[V]) write(v V) error {
	switch c.kind {
	case Computed:
		if c.writer == nil {
			return c.unsupported("computed value has no writer")
		}
		if err := c.validate(v); err != nil {
			return err
		}
		return c.writer(v)
	case Lazy:
		if c.writer == nil {
			return c.unsupported("lazy value has no writer")
		}
		if c.frozen && c.initialized {
			return c.unsupported("lazy value is frozen after initialization")
		}
		if err := c.validate(v); err != nil {
			return err
		}
		if err := c.writer(v); err != nil {
			return err
		}
		c.value = v
		c.initialized = true
		return nil
	default:
		if err := c.validate(v); err != nil {
			return err
		}
		old := c.value
		c.value = v
		if c.kind == Observable && c.bus != nil {
			return c.bus.Notify(c.name, old, v)
		}
		return nil
	}
}

func (c *Cell[V]) validate(v V) error {
	if c.validator == nil {
		return nil
	}
	if err := c.validator(v); err != nil {
		return &RejectedValueError{Property: c.name, Value: v, Err: err}
	}
	return nil
}

func (c *Cell[V]) unsupported(reason string) error {
	return &UnsupportedOperationError{Property: c.name, Kind: c.kind, Reason: reason}
}

func writeOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, ErrRejectedValue):
		return observability.OutcomeRejected
	case errors.Is(err, ErrUnsupportedOperation):
		return observability.OutcomeUnsupported
	case errors.Is(err, changebus.ErrListenerFailed):
		return observability.OutcomeListener
	default:
		return observability.OutcomeError
	}
}
