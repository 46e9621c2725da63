package booking

import (
	"errors"
	"fmt"
)

// Error codes returned by the booking service. Everything except
// CodeRepository is an expected, recoverable, caller-visible outcome.
const (
	CodeValidation = "validation"
	CodeForbidden  = "forbidden"
	CodeState      = "state"
	CodeNotFound   = "notFound"
	CodeConflict   = "conflict"
	CodeRepository = "repository"
)

// Error is a domain error with a machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NewStateError(msg string) error {
	return &Error{Code: CodeState, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewRepositoryError(err error) error {
	return &Error{Code: CodeRepository, Message: err.Error()}
}

// CodeOf extracts the domain error code, or empty for foreign errors.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
