package delegate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompleteInterface = errors.New("incomplete interface")
	ErrNilBacking          = errors.New("backing is nil")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrBadArguments        = errors.New("bad arguments")
)

// IncompleteInterfaceError is returned by New when the override table and
// the backing do not jointly cover the capability.
type IncompleteInterfaceError struct {
	Capability string
	// Unknown lists override keys that are not operations of the capability.
	Unknown []string
	// Missing lists operations neither overridden nor offered by the backing.
	Missing []string
}

func (e *IncompleteInterfaceError) Error() string {
	var parts []string
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown overrides [%s]", strings.Join(e.Unknown, ", ")))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing operations [%s]", strings.Join(e.Missing, ", ")))
	}
	return fmt.Sprintf("%s %s: %s", ErrIncompleteInterface, e.Capability, strings.Join(parts, "; "))
}

func (e *IncompleteInterfaceError) Is(target error) bool {
	return target == ErrIncompleteInterface
}
