package apperrors

import "errors"

var (
	// ErrNotFound signals that the addressed recipe does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument signals malformed input that failed aggregate validation.
	ErrInvalidArgument = errors.New("invalid argument")
)
