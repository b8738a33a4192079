package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
)

// FallbackMessage is shown when the server gave no usable error body.
const FallbackMessage = "An unexpected error occurred."

// Error is the single normalized failure value surfaced to callers.
// StatusCode is zero when the request never reached the server.
type Error struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AuthFailure reports whether the failure invalidates the session.
func (e *Error) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthFailure reports whether err carries an authorization failure.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.AuthFailure()
}

// ErrNoToken is returned when an authorized call is attempted without a
// stored session. It counts as an auth failure so the forced-logout path
// applies uniformly.
var ErrNoToken = &Error{
	StatusCode: http.StatusUnauthorized,
	Message:    "No token found, please log in.",
}

// normalize extracts a displayable message from an error body, in
// priority order: message field, error field, fixed fallback.
func normalize(statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}

	message := FallbackMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			message = payload.Message
		case payload.Err != "":
			message = payload.Err
		}
	}

	return &Error{StatusCode: statusCode, Message: message}
}

func transportError(err error) *Error {
	return &Error{Message: FallbackMessage, cause: err}
}
