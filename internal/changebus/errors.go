package changebus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListenerFailed = errors.New("listener failed")
	ErrListenerPanic  = errors.New("listener panicked")
)

// ListenerError is one isolated failure inside a broadcast.
type ListenerError struct {
	Handle   Handle
	Listener string
	// Index is the listener's position in the broadcast snapshot.
	Index int
	Err   error
}

func (e ListenerError) Error() string {
	return fmt.Sprintf("listener %s (#%d): %v", e.Listener, e.Index, e.Err)
}

func (e ListenerError) Unwrap() error { return e.Err }

// NotifyError aggregates every listener failure of one broadcast. The state
// change that triggered the broadcast has already happened.
type NotifyError struct {
	Property string
	Failures []ListenerError
}

func (e *NotifyError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%s: property %s: %s", ErrListenerFailed, e.Property, strings.Join(msgs, "; "))
}

func (e *NotifyError) Is(target error) bool {
	return target == ErrListenerFailed
}

func (e *NotifyError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f)
	}
	return out
}

// Listeners returns the names of the failed listeners in delivery order.
func (e *NotifyError) Listeners() []string {
	out := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Listener)
	}
	return out
}
