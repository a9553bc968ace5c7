package model

import "errors"

var (
	// ErrUnknownFormat is returned when a format outside the supported set is
	// requested.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidStory indicates a story record that misses required fields.
	ErrInvalidStory = errors.New("invalid story")
)
