package leads

import (
	"errors"
	"fmt"
)

// FailureMessage is shown to the user whenever a demo request cannot be stored.
const FailureMessage = "Something went wrong, please try again later."

var (
	// ErrSubmitInFlight is returned when a submit arrives while another one is
	// still being stored.
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrAlreadySubmitted is returned when a submit arrives while the success
	// panel of the previous one is still showing.
	ErrAlreadySubmitted = errors.New("demo request already submitted")

	// ErrSurfaceClosed is returned when submitting on a surface that is not open.
	ErrSurfaceClosed = errors.New("form surface is closed")

	// ErrTimeout marks a store call that did not settle in time.
	ErrTimeout = errors.New("demo request store timed out")
)

// PersistenceError wraps any failure to store a demo request.
type PersistenceError struct {
	Timeout bool
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("cannot store demo request: %v", ErrTimeout)
	}
	return fmt.Sprintf("cannot store demo request: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTimeout) hold for timeouts.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrTimeout && e.Timeout
}

// IsPersistenceError reports whether err is, or wraps, a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
