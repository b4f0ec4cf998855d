// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Matching errors.
	ErrNoTargets  = errors.New("no target filenames to match")
	ErrEmptyScope = errors.New("no search directories configured")
	ErrNoRun      = errors.New("no reconciliation run recorded")

	// CSV errors.
	ErrColumnNotFound  = errors.New("column not found")
	ErrUnreadableCSV   = errors.New("could not read CSV with any supported encoding")
	ErrMissingHeadings = errors.New("verified headings file not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the operator.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
