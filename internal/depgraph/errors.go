package depgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNode matches every DuplicateNodeError via errors.Is.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode matches every UnknownNodeError via errors.Is.
	ErrUnknownNode = errors.New("unknown node")
)

// DuplicateNodeError is returned by AddNode when the key is already taken.
type DuplicateNodeError struct {
	Key string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node '%s' already exists", e.Key)
}

// Is reports whether target is ErrDuplicateNode.
func (e *DuplicateNodeError) Is(target error) bool {
	return target == ErrDuplicateNode
}

// UnknownNodeError is returned when a key does not name a registered node.
// From is set when the key was reached as the target of a dependency edge
// during Sort, and is empty when the key was the source passed to
// AddDependency.
type UnknownNodeError struct {
	Key  string
	From string
}

func (e *UnknownNodeError) Error() string {
	if e.From != "" {
		return fmt.Sprintf("node '%s' depends on unknown node '%s'", e.From, e.Key)
	}
	return fmt.Sprintf("node '%s' not found", e.Key)
}

// Is reports whether target is ErrUnknownNode.
func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}
