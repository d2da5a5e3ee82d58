package projection

import "errors"

// ErrUnknownSort is returned for an unrecognised sort directive.
var ErrUnknownSort = errors.New("unknown sort directive")
