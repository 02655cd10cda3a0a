package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential  = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("this username is already in use")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInternal           = errors.New("internal error")

	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
)

// validationError wraps ErrValidation with a field-specific message.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// internalError wraps an unexpected store or hashing failure.
func internalError(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
