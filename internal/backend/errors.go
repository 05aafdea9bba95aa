package backend

import "fmt"

// TransportError covers network failures, timeouts and non-2xx statuses.
// The controller treats it as a signal to serve the local fallback.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend transport error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("backend transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError covers 2xx replies whose body lacks the expected
// fields. Handled identically to TransportError at the controller boundary.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("backend malformed response: %s", e.Reason)
}
