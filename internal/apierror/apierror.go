// Package apierror provides the canonical error types returned by services
// and translated to HTTP responses by handlers. All errors surfaced to
// clients go through this package so that internal details (stack traces,
// SQL errors) are never leaked.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the stable categories every
// handler knows how to translate.
type Kind int

const (
	KindInternal        Kind = iota // unexpected failure — generic 500
	KindInvalidArgument             // caller-supplied value violates a precondition
	KindNotFound                    // entity missing or outside the caller's empresa
	KindConflict                    // a state invariant blocks the operation
	KindForbidden                   // tenancy / authorization mismatch
	KindUnauthorized                // missing or invalid credentials
)

// Error carries a stable kind plus a human-readable message. The wrapped
// cause (if any) is preserved for logs but never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the kind to its HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func InvalidArgument(msg string) *Error { return &Error{Kind: KindInvalidArgument, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) *Error    { return &Error{Kind: KindUnauthorized, Message: msg} }

// Internal wraps an unexpected error, preserving the cause for diagnostics.
// Clients only ever see msg.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// From returns err as *Error when it already carries a kind, or wraps it
// as Internal otherwise. Services use this at transaction boundaries so
// classified errors propagate unchanged.
func From(err error, internalMsg string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(internalMsg, err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// APIError is the JSON envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
