package contact

import "errors"

var (
	// name errors
	ErrEmptyName       = errors.New("contact name cannot be empty")
	ErrContactNotFound = errors.New("contact not found")

	// request errors
	ErrNoDataProvided = errors.New("no data provided")
	ErrEmptyPhone     = errors.New("phone cannot be empty")
	ErrInvalidPage    = errors.New("page cannot be negative")
)
