package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested account or journal entry could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (unbalanced entry, malformed line, empty required field, unknown account type).
var ErrValidation = errors.New("validation error")

// ErrDuplicateCode indicates an account code collision on creation.
var ErrDuplicateCode = errors.New("account code already exists")

// ErrState indicates an operation is not valid for the entry's current lifecycle
// state, e.g. posting an already-posted entry.
var ErrState = errors.New("invalid entry state")

// ErrPersistence indicates the underlying store failed during an atomic
// transaction; the whole transaction has been rolled back.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
