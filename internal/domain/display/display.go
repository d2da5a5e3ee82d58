// Package display turns projected records into table rows. Splitting the skills
// string happens only here; matching and ordering work on the raw fields.
package display

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/okian/candidateview/internal/domain/candidate"
)

// Row is one rendered table row.
type Row struct {
	ID     candidate.ID `json:"id"`
	Name   string       `json:"name"`
	Skills []string     `json:"skills"`
	Years  string       `json:"yearsOfExperience"`

	numericID bool
}

// MarshalJSON writes the id in the JSON type the record carried.
func (r Row) MarshalJSON() ([]byte, error) {
	id, err := candidate.MarshalID(r.ID, r.numericID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID     json.RawMessage `json:"id"`
		Name   string          `json:"name"`
		Skills []string        `json:"skills"`
		Years  string          `json:"yearsOfExperience"`
	}{id, r.Name, r.Skills, r.Years})
}

// SkillTags splits a skills string on commas and trims each tag. Empty tags are dropped.
func SkillTags(skills string) []string {
	parts := strings.Split(skills, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// FormatYears renders years exactly as given, without padding or rounding.
func FormatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}

// NewRow renders a single record.
func NewRow(r candidate.Record) Row {
	return Row{
		ID:     r.ID,
		Name:   r.Name,
		Skills: SkillTags(r.Skills),
		Years:  FormatYears(r.YearsOfExperience),

		numericID: r.NumericID(),
	}
}

// Rows renders records in order.
func Rows(records []candidate.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = NewRow(r)
	}
	return rows
}
