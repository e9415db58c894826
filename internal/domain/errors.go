package domain

import "errors"

var (
	// ErrValidation wraps every rule violation reported by Validate.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned for IDs that cannot identify a command, such
	// as negative values or non-numeric path segments.
	ErrInvalidID = errors.New("invalid ID")
)
