package errors

import (
	"errors"
	"fmt"
)

// Common error types for the authorization core
var (
	// Session errors
	ErrSessionInvalid   = errors.New("session binding invalid")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCorruptState     = errors.New("corrupt persisted state")

	// Input errors
	ErrEmptyToken     = errors.New("empty token")
	ErrIncompleteUser = errors.New("user record missing required fields")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
