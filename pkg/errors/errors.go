package errors

import (
	"errors"
	"fmt"
)

// Sentinel input errors. Their text is client-facing.
var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// AppError carries a machine-readable code alongside the message so
// handlers can map business failures to HTTP statuses without string
// matching.
type AppError struct {
	Code    string
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewDependencyError wraps a failure of an external collaborator (store,
// mailer) so it is not reported to clients as their own mistake.
func NewDependencyError(message string, err error) *AppError {
	return &AppError{
		Code:    "DEPENDENCY_ERROR",
		Message: message,
		Err:     err,
	}
}
