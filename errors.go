package quell

import "errors"

var (
	// ErrMissingFile is returned when a path does not resolve to a regular
	// file (absent, removed mid-request, a directory, or a broken symlink)
	ErrMissingFile = errors.New("missing file")
	// ErrInvalidConfig is returned when construction-time configuration is rejected
	ErrInvalidConfig = errors.New("invalid configuration")
)
