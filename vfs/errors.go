package vfs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPathNotFound is returned when a path segment cannot be resolved to
	// an existing child.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrDuplicateChild is returned when an insertion would collide with an
	// existing sibling of the same full name.
	ErrDuplicateChild = errors.New("node already exists")

	// ErrNotADirectory is returned when a child-container operation is
	// attempted on a file node.
	ErrNotADirectory = errors.New("not a directory")

	// ErrUnknownFileType is returned when a file name has no extension or an
	// extension outside the fixed set.
	ErrUnknownFileType = errors.New("unknown file type")

	// ErrRootDeletion is returned when a delete targets the tree root.
	ErrRootDeletion = errors.New("cannot delete the root directory")
)

// NameViolation identifies a single naming rule broken by a proposed name.
type NameViolation string

const (
	NameEmpty    NameViolation = "name is empty"
	NameHasSlash NameViolation = "name contains a slash"
	NameHasNUL   NameViolation = "name contains a NUL byte"
	NameTooLong  NameViolation = "name exceeds 255 characters"
)

// NameError reports every naming rule violated by a proposed node name so
// callers can surface all of them at once rather than the first hit.
type NameError struct {
	Name       string
	Violations []NameViolation
}

func (e *NameError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = string(v)
	}
	return fmt.Sprintf("invalid name %q: %s", e.Name, strings.Join(msgs, "; "))
}

// Is lets errors.Is match any NameError regardless of its violations.
func (e *NameError) Is(target error) bool {
	_, ok := target.(*NameError)
	return ok
}
