package services

import "errors"

// Workflow error kinds. Services wrap these with context via fmt.Errorf and
// %w; controllers map them to HTTP statuses with errors.Is.
var (
	// ErrForbidden means the caller's identity is verified but it lacks the
	// assignment, role or permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced submission or work item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a claim race was lost. Expected under concurrent
	// review, not a server fault.
	ErrConflict = errors.New("conflict")

	// ErrValidation means the input is malformed or references nothing.
	ErrValidation = errors.New("invalid input")
)
