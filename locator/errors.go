package locator

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalInconsistency marks a selection that names an id the store does not hold.
	ErrInternalInconsistency = errors.New("internal inconsistency: location id not in store")

	// ErrNoChoice is returned when a submit is attempted without a chosen location.
	ErrNoChoice = errors.New("no location chosen")

	// ErrSubmitInFlight rejects a second submit while one is pending.
	ErrSubmitInFlight = errors.New("request submission already in flight")

	// ErrInvalidDraft wraps draft validation failures.
	ErrInvalidDraft = errors.New("invalid request draft")

	// ErrSessionClosed is returned when posting to a session whose loop has exited.
	ErrSessionClosed = errors.New("session closed")
)

// FetchError reports a failed placemark load.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch placemarks: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError reports a failed form request.
type SubmitError struct {
	LocationID int
	Err        error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit request for location %d: %v", e.LocationID, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
