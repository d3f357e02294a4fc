package delegate

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/danmuck/capkit/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Args are the positional arguments of one invocation.
type Args []any

// Result is the value returned by an operation, nil for operations with no
// meaningful result.
type Result any

// Backing is the implementation a Delegate forwards to.
type Backing interface {
	// Operations lists the operations Execute can serve.
	Operations() []OperationSpec
	Execute(op string, args Args) (Result, error)
}

// OverrideFunc replaces one operation. It receives the delegate, the backing
// and the call arguments; forwarding, if any, is its own decision and happens
// synchronously inside the call.
type OverrideFunc func(self *Delegate, backing Backing, args Args) (Result, error)

// Overrides maps operation names to replacement logic.
type Overrides map[string]OverrideFunc

// Delegate presents a capability by forwarding to a backing, except for the
// operations in its override table.
type Delegate struct {
	capability Capability
	backing    Backing
	overrides  map[string]OverrideFunc
	shared     bool
	closed     bool
	logger     zerolog.Logger
}

type Option func(*Delegate)

// WithSharedBacking marks the backing as externally owned. Close leaves it
// open and the delegate makes no exclusivity assumptions about it.
func WithSharedBacking() Option {
	return func(d *Delegate) { d.shared = true }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Delegate) { d.logger = logger }
}

// New validates coverage and freezes the override table. It fails with an
// *IncompleteInterfaceError when an override names an operation outside the
// capability or when an operation is neither overridden nor served by the
// backing.
func New(capability Capability, backing Backing, overrides Overrides, opts ...Option) (*Delegate, error) {
	if err := capability.Validate(); err != nil {
		return nil, err
	}
	if backing == nil {
		return nil, ErrNilBacking
	}

	table := make(map[string]OverrideFunc, len(overrides))
	var unknown []string
	for name, fn := range overrides {
		if !capability.Has(name) {
			unknown = append(unknown, name)
			continue
		}
		if fn == nil {
			return nil, fmt.Errorf("%w: override %q is nil", ErrInvalidCapability, name)
		}
		table[name] = fn
	}

	served := make(map[string]struct{})
	for _, op := range backing.Operations() {
		served[op.Name] = struct{}{}
	}
	var missing []string
	for _, op := range capability.Operations {
		if _, ok := table[op.Name]; ok {
			continue
		}
		if _, ok := served[op.Name]; !ok {
			missing = append(missing, op.Name)
		}
	}

	if len(unknown) > 0 || len(missing) > 0 {
		sort.Strings(unknown)
		sort.Strings(missing)
		return nil, &IncompleteInterfaceError{
			Capability: capability.Name,
			Unknown:    unknown,
			Missing:    missing,
		}
	}

	d := &Delegate{
		capability: capability,
		backing:    backing,
		overrides:  table,
		logger:     log.Logger.With().Str("capability", capability.Name).Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger.Debug().
		Strs("overridden", d.Overridden()).
		Bool("shared_backing", d.shared).
		Msg("delegate constructed")
	return d, nil
}

// Invoke dispatches op to its override or forwards it to the backing.
// Errors from the backing are returned unchanged.
func (d *Delegate) Invoke(op string, args ...any) (Result, error) {
	if !d.capability.Has(op) {
		observability.RecordDelegateInvocation(d.capability.Name, observability.OperationUnknown, observability.RouteNone, ErrUnknownOperation)
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownOperation, d.capability.Name, op)
	}

	if fn, ok := d.overrides[op]; ok {
		res, err := fn(d, d.backing, Args(args))
		observability.RecordDelegateInvocation(d.capability.Name, op, observability.RouteOverride, err)
		d.logger.Trace().Str("op", op).Str("route", observability.RouteOverride).Err(err).Msg("invoke")
		return res, err
	}

	res, err := d.backing.Execute(op, Args(args))
	observability.RecordDelegateInvocation(d.capability.Name, op, observability.RouteForward, err)
	d.logger.Trace().Str("op", op).Str("route", observability.RouteForward).Err(err).Msg("invoke")
	return res, err
}

func (d *Delegate) Capability() Capability { return d.capability }

func (d *Delegate) Backing() Backing { return d.backing }

// Owned reports whether the delegate is the exclusive owner of its backing.
func (d *Delegate) Owned() bool { return !d.shared }

func (d *Delegate) IsOverridden(op string) bool {
	_, ok := d.overrides[op]
	return ok
}

// Overridden returns the overridden operation names, sorted.
func (d *Delegate) Overridden() []string {
	out := make([]string, 0, len(d.overrides))
	for name := range d.overrides {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Forwarded returns the operations dispatched straight to the backing, sorted.
func (d *Delegate) Forwarded() []string {
	out := make([]string, 0, len(d.capability.Operations))
	for _, name := range d.capability.Names() {
		if !d.IsOverridden(name) {
			out = append(out, name)
		}
	}
	return out
}

// Description is a read-only snapshot of the dispatch table.
type Description struct {
	Capability string   `json:"capability"`
	Overridden []string `json:"overridden"`
	Forwarded  []string `json:"forwarded"`
	Shared     bool     `json:"shared_backing"`
}

func (d *Delegate) Describe() Description {
	return Description{
		Capability: d.capability.Name,
		Overridden: d.Overridden(),
		Forwarded:  d.Forwarded(),
		Shared:     d.shared,
	}
}

// Close releases an owned backing that implements io.Closer. Shared
// backings are left alone. Repeated calls are no-ops.
func (d *Delegate) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.shared {
		return nil
	}
	if c, ok := d.backing.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Arg extracts the i-th argument as T.
func Arg[T any](args Args, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: want at least %d args, have %d", ErrBadArguments, i+1, len(args))
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: arg %d is %T, want %s", ErrBadArguments, i, args[i], reflect.TypeFor[T]())
	}
	return v, nil
}
