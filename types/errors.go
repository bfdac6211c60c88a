package types

import "fmt"

// Messages shown to the user when the backend gives nothing better.
const (
	DefaultBackendErrorMessage   = "Failed to create ATA"
	DefaultTransportErrorMessage = "Could not connect to the server"
)

// ValidationError is a local input failure; it never reaches the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// BackendError is a non-2xx response. Message is shown verbatim.
type BackendError struct {
	StatusCode int
	Message    string
	Failure    FailureResult
}

func (e *BackendError) Error() string {
	return e.Message
}

// TransportError means no usable response was obtained: connection failure,
// canceled context or a body that is not JSON.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return DefaultTransportErrorMessage
	}
	return fmt.Sprintf("%s: %v", DefaultTransportErrorMessage, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
