package domain

import "errors"

// Domain errors represent error conditions in the framegate domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidFrame is returned when a sample fails validation or a wire
	// image fails to decode.
	ErrInvalidFrame = errors.New("framegate: invalid frame")

	// ErrInvalidConfig is returned when selector configuration validation fails.
	ErrInvalidConfig = errors.New("framegate: invalid configuration")

	// ErrEmptySource is returned when a frame source is built from no samples.
	ErrEmptySource = errors.New("framegate: empty source")
)
