package loader

import "errors"

// Sentinel kinds for load failures.
var (
	ErrFetch        = errors.New("candidate fetch failed")
	ErrStatus       = errors.New("candidate API returned non-2xx status")
	ErrDecode       = errors.New("candidate payload decode failed")
	ErrInvalidURL   = errors.New("invalid candidate API URL")
	ErrShutdownWait = errors.New("reloader shutdown timed out")
)
