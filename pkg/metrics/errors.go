package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownLoadOutcome = errors.New("unknown load outcome")
)
