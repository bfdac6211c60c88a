package form

import (
	"errors"
	"fmt"

	"github.com/strangelove-ventures/ata-devtool/types"
)

// Kind is the outcome a notification reports. Exactly one is emitted per
// accepted submit.
type Kind string

const (
	KindValidationError Kind = "validation_error"
	KindBackendError    Kind = "backend_error"
	KindTransportError  Kind = "transport_error"
	KindVerified        Kind = "verified"
	KindCreated         Kind = "created"
)

// Severity of a notification. The zero value means no outcome was reported.
type Severity uint8

const (
	SeverityNone Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	}
	return "none"
}

// Notification is a transient, dismissable toast.
type Notification struct {
	Kind        Kind     `json:"kind"`
	Severity    Severity `json:"-"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Notifier displays notifications. Implementations must not call back into
// the Controller that emitted them.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

const (
	invalidKeyTitle       = "Invalid Public Key"
	invalidKeyDescription = "Please enter a valid Solana public key (32-44 base58 characters)."
	missingTokenTitle     = "Token Required"
	missingTokenMessage   = "Please select a token."
	networkErrorTitle     = "Network Error"
	networkErrorMessage   = "Could not connect to the server. Please try again later."
)

func validationNotification(err *types.ValidationError) Notification {
	if err.Field == fieldToken {
		return Notification{
			Kind:        KindValidationError,
			Severity:    SeverityError,
			Title:       missingTokenTitle,
			Description: err.Message,
		}
	}
	return Notification{
		Kind:        KindValidationError,
		Severity:    SeverityError,
		Title:       invalidKeyTitle,
		Description: err.Message,
	}
}

// resultNotification maps an adapter outcome to its toast.
func resultNotification(res *types.AtaResult, err error) Notification {
	var backendErr *types.BackendError
	switch {
	case err == nil && res != nil:
		kind, verb := KindCreated, "created"
		if res.Verified() {
			kind, verb = KindVerified, "verified"
		}
		return Notification{
			Kind:        kind,
			Severity:    SeveritySuccess,
			Title:       "Success",
			Description: fmt.Sprintf("ATA %s for %s.", verb, res.Token),
		}
	case errors.As(err, &backendErr):
		return Notification{
			Kind:        KindBackendError,
			Severity:    SeverityError,
			Title:       "Error",
			Description: backendErr.Message,
		}
	default:
		return Notification{
			Kind:        KindTransportError,
			Severity:    SeverityError,
			Title:       networkErrorTitle,
			Description: networkErrorMessage,
		}
	}
}
