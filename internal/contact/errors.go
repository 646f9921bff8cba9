package contact

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for rejected submissions.
var (
	ErrNotConfigured      = errors.New("contact: outbound mail credential not configured")
	ErrMalformedForm      = errors.New("contact: malformed form body")
	ErrMissingFields      = errors.New("contact: required field missing")
	ErrInvalidEmail       = errors.New("contact: invalid email address")
	ErrAttachmentTooLarge = errors.New("contact: attachment too large")
)

// User-facing messages.
const (
	MessageNotConfigured = "Missing RESEND_API_KEY on the server."
	MessageMalformed     = "Invalid form submission."
	MessageMissing       = "Please complete name, email, and details."
	MessageInvalidEmail  = "Please enter a valid email address."
	MessageTooLarge      = "Attachment is too large (max 5MB)."
	MessageUnknown       = "Unknown error sending email."
)

// InputError is a user-correctable rejection of a submission.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

// Message returns the text shown to the submitter.
func (e *InputError) Message() string {
	switch {
	case errors.Is(e.Err, ErrMissingFields):
		return MessageMissing
	case errors.Is(e.Err, ErrInvalidEmail):
		return MessageInvalidEmail
	case errors.Is(e.Err, ErrAttachmentTooLarge):
		return MessageTooLarge
	default:
		return MessageMalformed
	}
}

func inputError(err error) error {
	return &InputError{Err: err}
}

// DeliveryKind classifies a failed send.
type DeliveryKind string

const (
	// KindRejected means the provider returned an error.
	KindRejected DeliveryKind = "rejected"
	// KindNoID means the provider answered without a message id.
	KindNoID DeliveryKind = "no_id"
	// KindTimeout means the send did not finish within the send timeout.
	KindTimeout DeliveryKind = "timeout"
	// KindPanic means the send step panicked.
	KindPanic DeliveryKind = "panic"
	// KindInternal means the email could not be built or was refused locally.
	KindInternal DeliveryKind = "internal"
)

// DeliveryError reports a failure of the outbound mail dependency.
type DeliveryError struct {
	Kind        DeliveryKind
	Description string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("contact: delivery %s: %s", e.Kind, e.Description)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Message returns the text shown to the submitter.
func (e *DeliveryError) Message() string {
	return "Resend error: " + e.Description
}

// StatusCode maps a Submit or Parse error to its HTTP status.
func StatusCode(err error) int {
	var (
		inErr  *InputError
		delErr *DeliveryError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.As(err, &inErr):
		return http.StatusBadRequest
	case errors.As(err, &delErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage maps an error to the message returned to the submitter.
// Internal details of unexpected errors are not exposed.
func UserMessage(err error) string {
	var (
		inErr  *InputError
		delErr *DeliveryError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return MessageNotConfigured
	case errors.As(err, &inErr):
		return inErr.Message()
	case errors.As(err, &delErr):
		return delErr.Message()
	default:
		return "Something went wrong. Please try again."
	}
}
