package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAMember rejects a send or leave by a client_id that is not
	// currently joined to the room. The operation mutates nothing.
	ErrNotAMember = fmt.Errorf("not a member of this room")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)

// StorageWriteError reports that the backing medium rejected a durable
// append. The write is atomic: no partial record is visible afterwards.
type StorageWriteError struct {
	Room string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write failed for room %q: %v", e.Room, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// StorageReadError reports that the backing medium could not be read.
type StorageReadError struct {
	Room string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("storage read failed for room %q: %v", e.Room, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// RehydrationError reports a corrupt persisted record. The room is
// treated as inaccessible rather than silently truncated.
type RehydrationError struct {
	Room string
	Err  error
}

func (e *RehydrationError) Error() string {
	return fmt.Sprintf("corrupt history for room %q: %v", e.Room, e.Err)
}

func (e *RehydrationError) Unwrap() error {
	return e.Err
}

// MapToHTTPStatus translates the core taxonomy for the transport
// adapter. Unknown errors are internal failures.
func MapToHTTPStatus(err error) int {
	var writeErr *StorageWriteError
	var readErr *StorageReadError
	var rehydrationErr *RehydrationError
	switch {
	case errors.Is(err, ErrNotAMember):
		return http.StatusForbidden
	case errors.As(err, &writeErr), errors.As(err, &readErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &rehydrationErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
