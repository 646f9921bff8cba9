package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PublicError is implemented by errors that choose their own HTTP status
// and user-facing message.
type PublicError interface {
	error
	StatusCode() int
	PublicMessage() string
}

// PanicError is a panic recovered while serving a request.
type PanicError struct {
	Value  any
	Stack  []byte // nil when stack capture is disabled
	Method string
	Path   string
}

func (e *PanicError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic serving %s %s: %v", e.Method, e.Path, e.Value)
}

// StatusCode implements PublicError.
func (e *PanicError) StatusCode() int { return http.StatusInternalServerError }

// PublicMessage implements PublicError. The panic value is never exposed.
func (e *PanicError) PublicMessage() string { return "Internal server error." }

// TimeoutError is returned when a request outlives its deadline.
type TimeoutError struct {
	Duration time.Duration
	Path     string
}

func (e *TimeoutError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("request exceeded %s deadline", e.Duration)
	}
	return fmt.Sprintf("%s exceeded %s deadline", e.Path, e.Duration)
}

// StatusCode implements PublicError.
func (e *TimeoutError) StatusCode() int { return http.StatusGatewayTimeout }

// PublicMessage implements PublicError.
func (e *TimeoutError) PublicMessage() string {
	return "The request timed out. Please try again."
}

// AsPanicError finds a *PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsTimeoutError finds a *TimeoutError in err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	ok := errors.As(err, &te)
	return te, ok
}

// AsPublicError finds the first error in err's chain that implements
// PublicError.
func AsPublicError(err error) (PublicError, bool) {
	var pe PublicError
	ok := errors.As(err, &pe)
	return pe, ok
}
