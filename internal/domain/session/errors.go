package session

import "errors"

// Sentinel kinds for session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnsupportedSort = errors.New("sort can only be set to asc or desc")
)
