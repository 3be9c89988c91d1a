package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error carrying the HTTP status of the
// remote failure that produced it (0 for local or transport failures).
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so predefined values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrRemote       = New("REMOTE_ERROR", http.StatusBadGateway, "remote request failed")
	ErrTransport    = New("TRANSPORT_ERROR", 0, "backend unreachable")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrUnavailable  = New("UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable")
	ErrBusy         = New("BUSY", 0, "another request is still in flight")
	ErrNoSession    = New("NO_SESSION", 0, "not logged in")
	ErrInternal     = New("INTERNAL_ERROR", 0, "internal error")
)

// FromStatus maps a non-2xx HTTP status to the matching predefined error.
func FromStatus(status int, message string) *Error {
	base := ErrRemote
	switch {
	case status == http.StatusUnauthorized:
		base = ErrUnauthorized
	case status == http.StatusForbidden:
		base = ErrForbidden
	case status == http.StatusNotFound:
		base = ErrNotFound
	case status == http.StatusConflict:
		base = ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = ErrValidation
	case status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		base = ErrUnavailable
	}
	e := Clone(base, message)
	e.Status = status
	if base == ErrValidation {
		// server-side rejections are remote failures, not local validation
		e.Code = ErrRemote.Code
	}
	return e
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrValidation.Code
}

// IsRemote reports whether err came from the backend or the transport to it.
func IsRemote(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ErrRemote.Code, ErrTransport.Code, ErrUnauthorized.Code, ErrForbidden.Code,
		ErrNotFound.Code, ErrConflict.Code, ErrUnavailable.Code:
		return true
	}
	return false
}
