package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can map it to exactly one
// HTTP status. Every error crossing a handler boundary carries one.
type Kind int

const (
	// Configuration means a required setting or resource is absent.
	// Fatal to the request, never retried.
	Configuration Kind = iota
	// Upstream means a remote provider failed (network, HTTP, protocol).
	Upstream
	// Validation means the client sent a malformed request.
	Validation
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Upstream:
		return "upstream"
	case Validation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a classified error with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// StatusCode overrides the default status for the Kind when non-zero.
	// The fallback provider reports Upstream failures as 500 rather than
	// 502 because no gateway hop is involved.
	StatusCode int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a classified error without an underlying cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a classification to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithStatus pins the HTTP status reported for this error.
func (e *Error) WithStatus(code int) *Error {
	e.StatusCode = code
	return e
}

// KindOf extracts the classification from err.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// Status maps an error to the HTTP status code its classification demands.
// Unclassified errors are treated as internal server errors.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	if appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	switch appErr.Kind {
	case Validation:
		return http.StatusBadRequest
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
