package changebus

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/danmuck/capkit/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event describes one committed state change.
type Event struct {
	Property string
	Old      any
	New      any
}

type Listener interface {
	PropertyChanged(ev Event) error
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(ev Event) error

func (f ListenerFunc) PropertyChanged(ev Event) error { return f(ev) }

// Handle identifies one registration. The zero Handle is never issued.
type Handle struct {
	id uint64
}

func (h Handle) Valid() bool { return h.id != 0 }

func (h Handle) String() string { return "sub-" + strconv.FormatUint(h.id, 10) }

type registration struct {
	handle   Handle
	name     string
	property string
	listener Listener
}

// Bus delivers events to its listeners in registration order. It is not
// safe for concurrent use.
type Bus struct {
	regs   []registration
	seq    uint64
	logger zerolog.Logger
}

type Option func(*Bus)

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bus) { b.logger = logger }
}

type RegisterOption func(*registration)

// Named sets the name used in failure reports.
func Named(name string) RegisterOption {
	return func(r *registration) { r.name = name }
}

// ForProperty restricts the listener to events for one property.
func ForProperty(property string) RegisterOption {
	return func(r *registration) { r.property = property }
}

func New(opts ...Option) *Bus {
	b := &Bus{logger: log.Logger.With().Str("component", "changebus").Logger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register appends l. Registering the same listener twice yields two
// registrations that both fire. A nil listener is ignored and returns the
// zero Handle.
func (b *Bus) Register(l Listener, opts ...RegisterOption) Handle {
	if l == nil {
		return Handle{}
	}
	b.seq++
	reg := registration{
		handle:   Handle{id: b.seq},
		name:     "listener-" + strconv.FormatUint(b.seq, 10),
		listener: l,
	}
	for _, opt := range opts {
		opt(&reg)
	}
	b.regs = append(b.regs, reg)
	b.logger.Debug().Str("listener", reg.name).Str("property", reg.property).Msg("listener registered")
	return reg.handle
}

// Unregister removes the registration for h and reports whether it existed.
func (b *Bus) Unregister(h Handle) bool {
	for i, reg := range b.regs {
		if reg.handle == h {
			b.regs = slices.Delete(b.regs, i, i+1)
			return true
		}
	}
	return false
}

// Notify delivers one event to every listener registered when the call
// starts, in registration order. Listeners added during delivery wait for the
// next call; listeners removed during delivery still receive this one.
// Returns a *NotifyError if any listener failed or panicked.
func (b *Bus) Notify(property string, oldValue, newValue any) error {
	snapshot := slices.Clone(b.regs)
	ev := Event{Property: property, Old: oldValue, New: newValue}
	observability.RecordNotification(property)

	var failures []ListenerError
	for i, reg := range snapshot {
		if reg.property != "" && reg.property != property {
			continue
		}
		if err := deliver(reg.listener, ev); err != nil {
			failures = append(failures, ListenerError{
				Handle:   reg.handle,
				Listener: reg.name,
				Index:    i,
				Err:      err,
			})
			observability.RecordListenerFailure(property, reg.name)
			b.logger.Warn().Err(err).Str("listener", reg.name).Str("property", property).Msg("listener failed")
		}
	}
	if len(failures) > 0 {
		return &NotifyError{Property: property, Failures: failures}
	}
	return nil
}

func deliver(l Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()
	return l.PropertyChanged(ev)
}

func (b *Bus) Len() int { return len(b.regs) }

// Listeners returns registration names in delivery order.
func (b *Bus) Listeners() []string {
	out := make([]string, 0, len(b.regs))
	for _, reg := range b.regs {
		out = append(out, reg.name)
	}
	return out
}
