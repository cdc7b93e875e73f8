package iconcache

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for components that have no entry.
	ErrNotFound = errors.New("iconcache: not found")

	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("iconcache: closed")
)

// CorruptError reports a blob that exists but cannot be decoded.
type CorruptError struct {
	Name string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("iconcache: corrupt blob %s: %v", e.Name, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
