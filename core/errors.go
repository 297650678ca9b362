package core

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrUnknownFormat   = errors.New("unknown source format")
	ErrNoSources       = errors.New("no convertible sources found")
	ErrEmptyOutput     = errors.New("conversion produced no content")
	ErrOutputCollision = errors.New("output path already used by another source")
)
