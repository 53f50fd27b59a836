package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrPermissionDenied indicates the actor lacks the capability or ownership required.
var ErrPermissionDenied = errors.New("permission denied")

// ErrInvalidInput indicates that input data failed validation checks.
var ErrInvalidInput = errors.New("invalid input")

// ErrDuplicateItem indicates an attempt to create something that already
// exists, such as a line whose item code is already on the document or a
// second document for the same transfer request.
var ErrDuplicateItem = errors.New("duplicate resource")

// ErrInvalidTransition indicates a status change that is not allowed from the current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrValidationRequired indicates a submission blocked by unvalidated serial numbers.
var ErrValidationRequired = errors.New("serial validation required")

// ErrExternalService indicates a call to the ERP failed.
var ErrExternalService = errors.New("external service failure")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// InvalidTransitionError reports the current and requested status of a rejected transition.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// NewInvalidTransition builds an InvalidTransitionError for the given statuses.
func NewInvalidTransition(from, to string) error {
	return &InvalidTransitionError{From: from, To: to}
}

// DuplicateItemError names the item code that already exists on the document.
type DuplicateItemError struct {
	ItemCode string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %s already exists on this document", e.ItemCode)
}

func (e *DuplicateItemError) Unwrap() error { return ErrDuplicateItem }

// ValidationRequiredError carries the number of serial entries still unvalidated.
type ValidationRequiredError struct {
	UnvalidatedCount int
}

func (e *ValidationRequiredError) Error() string {
	if e.UnvalidatedCount == 0 {
		return ErrValidationRequired.Error()
	}
	return fmt.Sprintf("%d serial numbers are not validated", e.UnvalidatedCount)
}

func (e *ValidationRequiredError) Unwrap() error { return ErrValidationRequired }

// ExternalServiceError wraps a failed ERP call. Retryable signals whether the
// caller may retry the same operation without any local state change.
type ExternalServiceError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ExternalServiceError) Unwrap() error { return ErrExternalService }

// NewExternalServiceError wraps err as an ERP failure for operation op.
func NewExternalServiceError(op string, retryable bool, err error) error {
	return &ExternalServiceError{Op: op, Retryable: retryable, Err: err}
}

// AppError carries an HTTP-ish status code alongside a message and cause.
// Used by the persistence layer for infrastructure failures.
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

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
