package projection

import (
	"fmt"
	"strings"
)

// SortDirective selects the ordering applied after filtering.
type SortDirective int

const (
	// None keeps collection order.
	None SortDirective = iota
	// Ascending orders by years of experience, fewest first.
	Ascending
	// Descending orders by years of experience, most first.
	Descending
)

// String returns the wire form: "none", "asc" or "desc".
func (d SortDirective) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	case None:
		return "none"
	default:
		return fmt.Sprintf("SortDirective(%d)", int(d))
	}
}

// ParseSortDirective parses "", "none", "asc", "ascending", "desc" or "descending"
// (case-insensitive).
func ParseSortDirective(s string) (SortDirective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirective) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirective) UnmarshalText(text []byte) error {
	parsed, err := ParseSortDirective(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
