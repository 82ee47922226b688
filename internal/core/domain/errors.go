package domain

import "errors"

var (
	// ErrValidation is wrapped by every error raised when a field value breaks its format rule
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by EditPhone when the phone to replace does not exist
	ErrNotFound = errors.New("not found")
)
