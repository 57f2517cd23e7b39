package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Gateway error taxonomy. Read paths never surface these to a page; write
// paths report them through ActionError.
var (
	// Authentication errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidSession   = errors.New("invalid session")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamRejected    = errors.New("upstream rejected request")

	// Input errors
	ErrValidation  = errors.New("validation failed")
	ErrInvalidBody = errors.New("invalid body")

	// General errors
	ErrInternal = errors.New("internal error")
)

// ActionError is the structured failure of a mutating action (login, signup,
// submit sighting). Status is the HTTP status the presentation layer should
// answer with and Message is safe to show inline.
type ActionError struct {
	Status  int
	Message string
	// Field names the offending form field for local validation failures.
	Field string
	// Body is an upstream error body relayed verbatim, when there is one.
	Body []byte
	Err  error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) *ActionError {
	return &ActionError{Status: http.StatusBadRequest, Message: message, Field: field, Err: ErrValidation}
}

func Unauthenticated(message string) *ActionError {
	return &ActionError{Status: http.StatusUnauthorized, Message: message, Err: ErrNotAuthenticated}
}

func Unavailable(message string, cause error) *ActionError {
	return &ActionError{Status: http.StatusServiceUnavailable, Message: message, Err: Join(ErrUpstreamUnavailable, cause)}
}

func Rejected(status int, message string, body []byte) *ActionError {
	return &ActionError{Status: status, Message: message, Body: body, Err: ErrUpstreamRejected}
}

// AsActionError unwraps err to an ActionError, wrapping unknown errors as 500s.
func AsActionError(err error) *ActionError {
	if err == nil {
		return nil
	}
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr
	}
	return &ActionError{Status: http.StatusInternalServerError, Message: "Something went wrong.", Err: Join(ErrInternal, err)}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}
