package domain

import "errors"

var (
	// ErrNotFound signals a missing store, product, or other entity
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals that the caller does not own the requested resource
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals a uniqueness violation (duplicate SKU, PO number)
	ErrConflict = errors.New("conflict")
	// ErrValidation signals malformed caller input
	ErrValidation = errors.New("validation failed")
)
