package candidate_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/candidateview/internal/domain/candidate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeList(t *testing.T) {
	Convey("Given a candidate API payload", t, func() {
		Convey("When the payload is well formed", func() {
			body := `[
				{"id": 1, "name": "Ada Lovelace", "skills": "Python, ML", "yearsOfExperience": 5},
				{"id": "b-2", "name": "Bo Diaz", "skills": "Go, SQL", "yearsOfExperience": 5.5}
			]`
			records, err := candidate.DecodeList(strings.NewReader(body))

			Convey("Then every field is decoded", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].ID, ShouldEqual, candidate.ID("1"))
				So(records[0].NumericID(), ShouldBeTrue)
				So(records[0].Name, ShouldEqual, "Ada Lovelace")
				So(records[0].Skills, ShouldEqual, "Python, ML")
				So(records[0].YearsOfExperience, ShouldEqual, 5)
				So(records[1].NumericID(), ShouldBeFalse)
				So(records[1].ID, ShouldEqual, candidate.ID("b-2"))
				So(records[1].YearsOfExperience, ShouldEqual, 5.5)
			})
		})

		Convey("When fields are missing or of the wrong type", func() {
			body := `[
				{"id": 1, "name": null, "yearsOfExperience": -2},
				{"id": 2, "name": "Cy", "skills": 42, "yearsOfExperience": "ten"},
				{"id": 3, "name": ["x"], "skills": {"a": 1}}
			]`
			records, err := candidate.DecodeList(strings.NewReader(body))

			Convey("Then they degrade to empty values instead of failing", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].Name, ShouldEqual, "")
				So(records[0].Skills, ShouldEqual, "")
				So(records[0].YearsOfExperience, ShouldEqual, -2)
				So(records[1].Skills, ShouldEqual, "")
				So(records[1].YearsOfExperience, ShouldEqual, 0)
				So(records[2].Name, ShouldEqual, "")
				So(records[2].Skills, ShouldEqual, "")
			})
		})

		Convey("When the payload is an empty array", func() {
			records, err := candidate.DecodeList(strings.NewReader(`[]`))

			Convey("Then an empty collection is returned", func() {
				So(err, ShouldBeNil)
				So(records, ShouldNotBeNil)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When the array holds null elements", func() {
			records, err := candidate.DecodeList(strings.NewReader(`[null, {"id": 1, "name": "Ada"}, null]`))

			Convey("Then they are skipped", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Name, ShouldEqual, "Ada")
			})
		})

		Convey("When the payload is not an array", func() {
			for _, body := range []string{`{"id": 1}`, `null`, `"text"`, `[1, 2]`, `[{"id": 1}`, ``} {
				_, err := candidate.DecodeList(strings.NewReader(body))
				So(errors.Is(err, candidate.ErrDecode), ShouldBeTrue)
			}
		})
	})
}

func TestIDRoundTrip(t *testing.T) {
	Convey("Given opaque ids", t, func() {
		Convey("Ids keep the JSON type they arrived as", func() {
			in := `[{"id":7,"name":"a","skills":"","yearsOfExperience":1},{"id":"1","name":"b","skills":"","yearsOfExperience":2}]`
			records, err := candidate.DecodeList(strings.NewReader(in))
			So(err, ShouldBeNil)
			out, err := json.Marshal(records)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, in)
		})

		Convey("Ids built in code are written as strings", func() {
			out, err := json.Marshal(candidate.Record{ID: "7", Name: "n"})
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, `"id":"7"`)
		})

		Convey("Boolean ids are rejected", func() {
			var id candidate.ID
			So(errors.Is(json.Unmarshal([]byte(`true`), &id), candidate.ErrDecode), ShouldBeTrue)
			_, err := candidate.DecodeList(strings.NewReader(`[{"id": true}]`))
			So(errors.Is(err, candidate.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestDuplicateIDs(t *testing.T) {
	Convey("Given a collection with repeated ids", t, func() {
		records := []candidate.Record{{ID: "1"}, {ID: "2"}, {ID: "1"}, {ID: "3"}, {ID: "2"}, {ID: "1"}}

		Convey("Then each repeated id is reported once in first-seen order", func() {
			So(candidate.DuplicateIDs(records), ShouldResemble, []candidate.ID{"1", "2"})
		})

		Convey("And a unique collection reports nothing", func() {
			So(candidate.DuplicateIDs(records[:2]), ShouldBeEmpty)
		})
	})
}
