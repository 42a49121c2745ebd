package download

import "errors"

var (
	ErrStreamUnavailable = errors.New("video stream is not available")
	ErrInvalidRequest    = errors.New("invalid download request")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrDescriptor        = errors.New("descriptor load failed")
	ErrEmptyDescriptor   = errors.New("descriptor has no entries")
)
