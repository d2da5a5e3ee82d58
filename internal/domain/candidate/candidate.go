// Package candidate defines the candidate record as delivered by the candidate API.
package candidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ID is an opaque identifier. The API may send it as a JSON string or number;
// either way it is kept in its textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	parsed, _, err := parseID(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseID reports whether the id arrived as a JSON number.
func parseID(data []byte) (ID, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, fmt.Errorf("%w: id: %w", ErrDecode, err)
		}
		return ID(s), false, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", false, fmt.Errorf("%w: id must be a string or number", ErrDecode)
	}
	return ID(n.String()), true, nil
}

// Record is one candidate. Records are never mutated once decoded.
type Record struct {
	ID                ID      `json:"id"`
	Name              string  `json:"name"`
	Skills            string  `json:"skills"`
	YearsOfExperience float64 `json:"yearsOfExperience"`

	numericID bool
}

// NumericID reports whether the id was sent as a JSON number.
func (r Record) NumericID() bool {
	return r.numericID
}

// wireRecord keeps the raw field values so that malformed fields degrade instead of failing the whole array.
type wireRecord struct {
	ID                json.RawMessage `json:"id"`
	Name              json.RawMessage `json:"name"`
	Skills            json.RawMessage `json:"skills"`
	YearsOfExperience json.RawMessage `json:"yearsOfExperience"`
}

// UnmarshalJSON decodes a record leniently: a missing, null or non-string name or
// skills becomes "", a missing or non-numeric yearsOfExperience becomes 0.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: record: %w", ErrDecode, err)
	}
	id, numeric, err := parseID(w.ID)
	if err != nil {
		return err
	}
	*r = Record{
		ID:                id,
		Name:              optionalString(w.Name),
		Skills:            optionalString(w.Skills),
		YearsOfExperience: optionalNumber(w.YearsOfExperience),
		numericID:         numeric,
	}
	return nil
}

// MarshalJSON writes the id back in the JSON type it arrived as.
func (r Record) MarshalJSON() ([]byte, error) {
	id, err := MarshalID(r.ID, r.numericID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID                json.RawMessage `json:"id"`
		Name              string          `json:"name"`
		Skills            string          `json:"skills"`
		YearsOfExperience float64         `json:"yearsOfExperience"`
	}{id, r.Name, r.Skills, r.YearsOfExperience})
}

// MarshalID encodes id as a JSON number when numeric is set, otherwise as a string.
func MarshalID(id ID, numeric bool) (json.RawMessage, error) {
	if numeric && json.Valid([]byte(id)) {
		return json.RawMessage(id), nil
	}
	return json.Marshal(string(id))
}

func optionalString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func optionalNumber(raw json.RawMessage) float64 {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return f
}

// DecodeList decodes a JSON array of records from r. Null elements are skipped.
func DecodeList(r io.Reader) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if raw == nil {
		// A literal null body is not a collection.
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var rec Record
		if err := rec.UnmarshalJSON(item); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DuplicateIDs returns the ids that occur more than once, in first-seen order.
func DuplicateIDs(records []Record) []ID {
	seen := make(map[ID]int, len(records))
	var dups []ID
	for _, r := range records {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
