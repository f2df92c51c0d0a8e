package analytics

import "errors"

var (
	// ErrInvalidInput indicates invalid analytics input.
	ErrInvalidInput = errors.New("invalid analytics input")
	// ErrInvalidRange indicates a malformed or inverted date range.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrContentNotFound indicates metrics for unknown content.
	ErrContentNotFound = errors.New("content not found")
	// ErrPlatformNotFound indicates an unknown platform.
	ErrPlatformNotFound = errors.New("platform not found")
)
