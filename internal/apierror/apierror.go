// Package apierror provides the typed error taxonomy and the standard
// {success, message} response envelope. All errors returned to clients go
// through this package so that internal details (stack traces, SQL errors)
// never leak.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for HTTP mapping and logging.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindLastAdmin      Kind = "last_admin_violation"
	KindInvalidStatus  Kind = "invalid_status"
	KindCheckoutFailed Kind = "checkout_failed"
	KindPersistence    Kind = "persistence"
)

// Error is the canonical application error. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func LastAdmin(format string, args ...interface{}) *Error {
	return &Error{Kind: KindLastAdmin, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatus(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidStatus, Message: fmt.Sprintf(format, args...)}
}

func CheckoutFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindCheckoutFailed, Message: fmt.Sprintf(format, args...)}
}

func Persistence(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or KindPersistence for anything that is
// not an *Error (unclassified store or provider failures).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidStatus:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindLastAdmin:
		return http.StatusConflict
	case KindCheckoutFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the canonical {success, message} response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail builds a failure envelope from err. Unclassified errors get a generic
// message so store internals stay hidden.
func Fail(err error) Envelope {
	var e *Error
	if errors.As(err, &e) {
		return Envelope{Success: false, Message: e.Message}
	}
	return Envelope{Success: false, Message: "An error occurred"}
}

// OK builds a success envelope.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}
