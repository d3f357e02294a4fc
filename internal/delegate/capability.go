package delegate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidCapability = errors.New("invalid capability")

// OperationSpec describes one operation of a capability.
type OperationSpec struct {
	Name        string
	Description string
	// ReadOnly marks operations that never mutate the backing.
	ReadOnly bool
}

// Capability is a named operation set a Delegate must cover in full.
type Capability struct {
	Name       string
	Operations []OperationSpec
}

// Validate checks the capability name and operation names.
func (c Capability) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCapability)
	}
	if len(c.Operations) == 0 {
		return fmt.Errorf("%w: %s declares no operations", ErrInvalidCapability, c.Name)
	}
	seen := make(map[string]struct{}, len(c.Operations))
	for _, op := range c.Operations {
		if !isValidOpName(op.Name) {
			return fmt.Errorf("%w: %s: invalid operation name %q", ErrInvalidCapability, c.Name, op.Name)
		}
		if _, dup := seen[op.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate operation %q", ErrInvalidCapability, c.Name, op.Name)
		}
		seen[op.Name] = struct{}{}
	}
	return nil
}

// Has reports whether op belongs to the capability.
func (c Capability) Has(op string) bool {
	_, ok := c.Lookup(op)
	return ok
}

// Lookup returns the spec for op.
func (c Capability) Lookup(op string) (OperationSpec, bool) {
	for _, spec := range c.Operations {
		if spec.Name == op {
			return spec, true
		}
	}
	return OperationSpec{}, false
}

// Names returns the operation names in sorted order.
func (c Capability) Names() []string {
	names := make([]string, 0, len(c.Operations))
	for _, op := range c.Operations {
		names = append(names, op.Name)
	}
	sort.Strings(names)
	return names
}

// Operation names start with a letter and continue with letters, digits or
// single '.', '-', '_' separators.
func isValidOpName(name string) bool {
	if name == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLetter || isDigit || isSep) {
			return false
		}
		if i == 0 && !isLetter {
			return false
		}
		if i == len(name)-1 && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
