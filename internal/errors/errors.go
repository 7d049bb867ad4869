// Package errors provides the shared error vocabulary of the maintenance core.
// Use cases and repositories wrap these sentinels so the outer layers (HTTP, CLI)
// can translate failures without knowing which entity produced them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every entity kind.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a clash with stored data (duplicate email, duplicate kpi value).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates missing or inconsistent entity information.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the supplied credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller's role may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err while keeping it matchable with Is and As.
// A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Join combines several errors; nil entries are dropped.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
