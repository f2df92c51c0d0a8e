package platform

import "errors"

var (
	// ErrPlatformNotFound indicates the platform doesn't exist.
	ErrPlatformNotFound = errors.New("platform not found")
	// ErrInvalidType indicates an unsupported platform type.
	ErrInvalidType = errors.New("unsupported platform type")
)
