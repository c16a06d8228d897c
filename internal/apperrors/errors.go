package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure. It must be surfaced
// to end users as a generic error, never with detail.
var ErrInternal = errors.New("internal error")

// ErrInsufficientStock indicates a stock adjustment would drive inventory negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUnbalanced indicates a voucher's debits do not equal its credits.
// This is an internal-consistency failure, never a valid business state.
var ErrUnbalanced = errors.New("voucher debits do not equal credits")

// AppError carries a status code alongside a message and the underlying
// cause. Repositories use it to wrap store failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
