package launcherkit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/iconcache"
)

var (
	// ErrNotFound is returned when an icon or blob does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned by operations on a closed Kit.
	ErrClosed = errors.New("launcherkit: closed")

	// ErrConflict is returned when another writer committed first.
	ErrConflict = errors.New("launcherkit: concurrent commit")
)

// ErrCorrupt reports a stored blob that could not be decoded.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrCorrupt struct {
	Name  string
	cause error
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("corrupt blob %q", e.Name)
}

func (e *ErrCorrupt) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, iconcache.ErrNotFound) || errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, iconcache.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	if errors.Is(err, blobstore.ErrConcurrentModification) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}

	var ce *iconcache.CorruptError
	if errors.As(err, &ce) {
		return &ErrCorrupt{Name: ce.Name, cause: err}
	}
	return err
}
