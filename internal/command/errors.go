package command

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// Dispatcher errors.
var (
	// ErrNotFound indicates no command matched at some level of the tree.
	ErrNotFound = errors.New("command: command not found")
)

// NotFoundError reports the name that failed to resolve and the path of
// group names consumed before it.
type NotFoundError struct {
	// Path holds the group names matched before the lookup failed.
	Path []string

	// Name is the unmatched name, empty when argv ran out.
	Name string
}

// Error implements error.
func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: missing sub-command after %q", ErrNotFound, strings.Join(e.Path, " "))
	}
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", ErrNotFound, e.Name)
	}
	return fmt.Sprintf("%s: %s %s", ErrNotFound, strings.Join(e.Path, " "), e.Name)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap exposes the matching OS error code.
func (e *NotFoundError) Unwrap() error {
	return syscall.ENOENT
}
