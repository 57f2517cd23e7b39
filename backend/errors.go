package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable marks transport-level failures: the backend could not be reached
// or its response could not be read.
var ErrUnavailable = errors.New("backend unavailable")

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	StatusCode int
	// Detail is the FastAPI "detail" message when the body carried a string one.
	Detail string
	Body   []byte
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Unauthorized reports whether the backend refused the bearer token.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newStatusError(statusCode int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: statusCode, Body: body}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		// Validation errors carry a list here; only plain strings are shown to users.
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			statusErr.Detail = detail
		}
	}
	return statusErr
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

// AsStatusError unwraps err to a *StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	ok := errors.As(err, &statusErr)
	return statusErr, ok
}
