package apperrors

import (
	"errors"
	"fmt"
)

// Store errors
var (
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrTableNotFound     = errors.New("table not found")
	ErrSchema            = errors.New("invalid table structure")
)

// Repository and business-rule errors
var (
	ErrRepositoryUnavailable  = errors.New("repository unavailable")
	ErrNotFound               = errors.New("not found")
	ErrDuplicateUser          = errors.New("user with this email already exists")
	ErrDuplicateActiveRequest = errors.New("an active mentorship request already exists")
	ErrValidation             = errors.New("validation failed")
)

// Caller errors
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
	ErrBadCredentials  = errors.New("invalid email or password")
)

// CustomError carries a caller-facing message on top of a sentinel.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string { return e.Message }

func (e *CustomError) Unwrap() error { return e.Err }

// NewValidationError creates a validation failure with a message safe to show callers.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewNotFoundError creates a not-found failure with a message safe to show callers.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// Repository annotates a store failure with the repository operation. Remote
// failures additionally match ErrRepositoryUnavailable.
func Repository(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRemoteUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrRepositoryUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
