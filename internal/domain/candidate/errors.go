package candidate

import "errors"

// ErrDecode marks a payload that is not a JSON array of candidate objects.
var ErrDecode = errors.New("candidate decode failed")
