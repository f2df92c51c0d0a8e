package content

import "errors"

var (
	// ErrContentNotFound indicates the content item doesn't exist.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidInput indicates invalid content input.
	ErrInvalidInput = errors.New("invalid content input")
	// ErrInvalidType indicates an unknown content type.
	ErrInvalidType = errors.New("invalid content type")
	// ErrInvalidStatus indicates an unknown content status.
	ErrInvalidStatus = errors.New("invalid content status")
)
