// Package errors defines the domain error taxonomy shared across services.
package errors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain error for HTTP mapping.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindInvalidState    Kind = "invalid_state"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindUnauthorized    Kind = "unauthorized"
	KindInternal        Kind = "internal"
)

// DomainError carries a machine-readable code alongside the message.
type DomainError struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewInvalidArgument reports malformed input to a calculator or service.
func NewInvalidArgument(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Code:    "INVALID_ARGUMENT",
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidState reports a transition attempted from an ineligible state.
// The current state is part of the message so callers can render an
// idempotent-looking response.
func NewInvalidState(current string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidState,
		Code:    "INVALID_STATE",
		Message: fmt.Sprintf("operation not allowed in current status %q", current),
	}
}

// NewNotFound reports a missing referenced entity.
func NewNotFound(entity string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: entity + " not found",
	}
}

// NewForbidden reports a failed ownership or role check.
func NewForbidden(message string) *DomainError {
	return &DomainError{
		Kind:    KindForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

// ErrUnauthorized is returned when no authenticated actor is present.
var ErrUnauthorized = &DomainError{
	Kind:    KindUnauthorized,
	Code:    "UNAUTHORIZED",
	Message: "authentication required",
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch de.Kind {
	case KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindInvalidState:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// As unwraps err into a DomainError if possible.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}
