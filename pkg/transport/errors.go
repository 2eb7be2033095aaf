package transport

import (
	"errors"
	"fmt"
)

// Sentinel errors mapping the service's HTTP status codes onto stable
// identities. Callers classify failures with errors.Is and reach the
// status code and server message through errors.As on *APIError.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrUnprocessable      = errors.New("unprocessable")
	ErrServerError        = errors.New("server error")
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRequestFailed covers status codes with no dedicated sentinel.
	ErrRequestFailed = errors.New("request failed")

	// ErrConnectionFailed marks a network-level failure: dial errors,
	// timeouts, TLS problems. Always retriable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrRetriesExhausted wraps the last attempt's error once every node
	// and retry has been tried.
	ErrRetriesExhausted = errors.New("all retries exhausted")
)

// APIError is a non-2xx response from the service. Message carries the
// `message` field of a JSON error body when the server sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto its sentinel so that
// errors.Is(err, transport.ErrNotFound) works on wrapped errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrAlreadyExists
	case 422:
		return ErrUnprocessable
	case 500:
		return ErrServerError
	case 503:
		return ErrServiceUnavailable
	default:
		return ErrRequestFailed
	}
}

// retriable reports whether an attempt outcome may succeed on another node.
// Server-side failures and transport errors are retried; 4xx responses are
// permanent and surface immediately.
func retriable(statusCode int) bool {
	return statusCode == 0 || statusCode >= 500
}
