package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/candidateview/internal/adapters/http/api"
	"github.com/okian/candidateview/internal/adapters/repository"
	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/internal/domain/session"
)

// fakeDeps backs the handlers with the real store and registry.
type fakeDeps struct {
	store    *repository.MemoryStore
	sessions session.Registry
	reloads  int
	pending  bool
}

func newFakeDeps(records []candidate.Record) *fakeDeps {
	return &fakeDeps{
		store:    repository.NewMemoryStore(repository.WithInitial(records)),
		sessions: session.NewInMemoryRegistry(session.WithIDGenerator(func() string { return "s1" })),
	}
}

func (f *fakeDeps) Candidates(ctx context.Context) []candidate.Record { return f.store.Get(ctx) }

func (f *fakeDeps) Project(ctx context.Context, q string, dir projection.SortDirective) []candidate.Record {
	return projection.Project(f.store.Get(ctx), q, dir)
}

func (f *fakeDeps) CreateSession(ctx context.Context) session.Session { return f.sessions.Create(ctx) }

func (f *fakeDeps) View(ctx context.Context, id string) (session.Session, []candidate.Record, error) {
	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return session.Session{}, nil, err
	}
	return s, projection.Project(f.store.Get(ctx), s.State.Query, s.State.Sort), nil
}

func (f *fakeDeps) SetQuery(ctx context.Context, id, q string) (session.Session, error) {
	return f.sessions.Update(ctx, id, func(v *session.ViewState) error { v.SetQuery(q); return nil })
}

func (f *fakeDeps) ClearQuery(ctx context.Context, id string) (session.Session, error) {
	return f.sessions.Update(ctx, id, func(v *session.ViewState) error { v.ClearQuery(); return nil })
}

func (f *fakeDeps) SelectSort(ctx context.Context, id string, dir projection.SortDirective) (session.Session, error) {
	return f.sessions.Update(ctx, id, func(v *session.ViewState) error { return v.SelectSort(dir) })
}

func (f *fakeDeps) DeleteSession(ctx context.Context, id string) bool { return f.sessions.Delete(ctx, id) }

func (f *fakeDeps) Reload(context.Context) bool {
	f.reloads++
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} { return m.stats }

var sample = []candidate.Record{
	{ID: "1", Name: "Ana Lima", Skills: "Go, SQL", YearsOfExperience: 5},
	{ID: "2", Name: "Bruno", Skills: "React, TypeScript", YearsOfExperience: 2},
	{ID: "3", Name: "Carla", Skills: "go, Kubernetes", YearsOfExperience: 8},
	{ID: "4", Name: "Dev", Skills: "", YearsOfExperience: 5},
}

type viewBody struct {
	ID         string `json:"id"`
	Query      string `json:"query"`
	Sort       string `json:"sort"`
	Count      int    `json:"count"`
	Candidates []struct {
		ID     candidate.ID `json:"id"`
		Name   string       `json:"name"`
		Skills []string     `json:"skills"`
		Years  string       `json:"yearsOfExperience"`
	} `json:"candidates"`
}

func (v viewBody) ids() []string {
	out := make([]string, len(v.Candidates))
	for i, c := range v.Candidates {
		out[i] = string(c.ID)
	}
	return out
}

func newMux(deps *fakeDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"collectionSize": 4}}).
		Register(context.Background(), mux)
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(newFakeDeps(sample))

		Convey("Then the health endpoint exposes metrics", func() {
			w := do(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "candidateview_core")
		})

		Convey("And the stats endpoint returns the provider stats", func() {
			w := do(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["collectionSize"], ShouldEqual, float64(4))
		})

		Convey("And unknown paths are not found", func() {
			w := do(mux, "GET", "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And wrong methods are rejected", func() {
			w := do(mux, "POST", "/candidates", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestCandidatesHandler(t *testing.T) {
	Convey("Given a server holding four candidates", t, func() {
		mux := newMux(newFakeDeps(sample))

		Convey("When requesting without parameters", func() {
			w := do(mux, "GET", "/candidates", "")
			var body viewBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then every candidate is returned in collection order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.ids(), ShouldResemble, []string{"1", "2", "3", "4"})
				So(body.Sort, ShouldEqual, "none")
			})

			Convey("And skills are split into trimmed tags", func() {
				So(body.Candidates[0].Skills, ShouldResemble, []string{"Go", "SQL"})
				So(body.Candidates[3].Skills, ShouldBeEmpty)
				So(body.Candidates[0].Years, ShouldEqual, "5")
			})
		})

		Convey("When filtering case-insensitively and sorting descending", func() {
			w := do(mux, "GET", "/candidates?q=GO&sort=desc", "")
			var body viewBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then only matches remain, most experienced first", func() {
				So(body.ids(), ShouldResemble, []string{"3", "1"})
				So(body.Query, ShouldEqual, "GO")
				So(body.Count, ShouldEqual, 2)
			})
		})

		Convey("When the query carries surrounding spaces", func() {
			w := do(mux, "GET", "/candidates?q=go%20", "")
			var body viewBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it is not trimmed", func() {
				So(body.ids(), ShouldBeEmpty)
				So(body.Query, ShouldEqual, "go ")
			})
		})

		Convey("When the sort parameter is unknown", func() {
			w := do(mux, "GET", "/candidates?sort=sideways", "")

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "unsupported_sort")
			})
		})

		Convey("When requesting the raw collection", func() {
			w := do(mux, "GET", "/api/candidates", "")
			var records []candidate.Record
			So(json.Unmarshal(w.Body.Bytes(), &records), ShouldBeNil)

			Convey("Then the records come back unchanged", func() {
				So(records, ShouldResemble, sample)
			})
		})
	})
}

func TestSessionsHandler(t *testing.T) {
	Convey("Given a server with a created session", t, func() {
		mux := newMux(newFakeDeps(sample))
		w := do(mux, "POST", "/sessions", "")
		So(w.Code, ShouldEqual, http.StatusCreated)
		So(w.Header().Get("Location"), ShouldEqual, "/sessions/s1")

		Convey("When reading the new session", func() {
			w := do(mux, "GET", "/sessions/s1", "")
			var body viewBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it starts with no query and no sorting", func() {
				So(body.ID, ShouldEqual, "s1")
				So(body.Query, ShouldEqual, "")
				So(body.Sort, ShouldEqual, "none")
				So(body.Count, ShouldEqual, 4)
			})
		})

		Convey("When setting a query and sorting ascending", func() {
			So(do(mux, "PUT", "/sessions/s1/query", `{"query":"go"}`).Code, ShouldEqual, http.StatusOK)
			So(do(mux, "PUT", "/sessions/s1/sort", `{"sort":"asc"}`).Code, ShouldEqual, http.StatusOK)

			w := do(mux, "GET", "/sessions/s1", "")
			var body viewBody
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then the projection reflects both", func() {
				So(body.ids(), ShouldResemble, []string{"1", "3"})
				So(body.Sort, ShouldEqual, "asc")
			})

			Convey("And Clear empties only the query", func() {
				w := do(mux, "DELETE", "/sessions/s1/query", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"query":""`)
				So(w.Body.String(), ShouldContainSubstring, `"sort":"asc"`)
			})

			Convey("And None cannot be selected", func() {
				w := do(mux, "PUT", "/sessions/s1/sort", `{"sort":"none"}`)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "unsupported_sort")
			})
		})

		Convey("When the query body is malformed", func() {
			So(do(mux, "PUT", "/sessions/s1/query", `{"query":`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "PUT", "/sessions/s1/query", `{}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "PUT", "/sessions/s1/query", `{"q":"go"}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When addressing an unknown session", func() {
			Convey("Then every operation reports not found", func() {
				So(do(mux, "GET", "/sessions/nope", "").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, "PUT", "/sessions/nope/query", `{"query":"x"}`).Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, "DELETE", "/sessions/nope/query", "").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, "PUT", "/sessions/nope/sort", `{"sort":"desc"}`).Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, "DELETE", "/sessions/nope", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When deleting the session", func() {
			So(do(mux, "DELETE", "/sessions/s1", "").Code, ShouldEqual, http.StatusNoContent)

			Convey("Then it is gone", func() {
				So(do(mux, "GET", "/sessions/s1", "").Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestReloadHandler(t *testing.T) {
	Convey("Given a server", t, func() {
		deps := newFakeDeps(sample)
		mux := newMux(deps)

		Convey("When reload is requested twice", func() {
			first := do(mux, "POST", "/admin/reload", "")
			second := do(mux, "POST", "/admin/reload", "")

			Convey("Then both are accepted and the second is coalesced", func() {
				So(first.Code, ShouldEqual, http.StatusAccepted)
				So(first.Body.String(), ShouldContainSubstring, "queued")
				So(second.Code, ShouldEqual, http.StatusAccepted)
				So(second.Body.String(), ShouldContainSubstring, "coalesced")
				So(deps.reloads, ShouldEqual, 2)
			})
		})
	})
}

func TestPageHandler(t *testing.T) {
	Convey("Given a server holding candidates", t, func() {
		mux := newMux(newFakeDeps(sample))

		Convey("When the page is requested with a query and sort", func() {
			w := do(mux, "GET", "/?q=go&sort=desc", "")
			body := w.Body.String()

			Convey("Then the table shows matches in order with skill chips", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				So(body, ShouldContainSubstring, "Candidate List Viewer")
				So(strings.Index(body, "Carla"), ShouldBeLessThan, strings.Index(body, "Ana Lima"))
				So(body, ShouldNotContainSubstring, "Bruno")
				So(body, ShouldContainSubstring, `<span class="chip">Kubernetes</span>`)
			})

			Convey("And Clear keeps the sort while dropping the query", func() {
				So(body, ShouldContainSubstring, `href="/?sort=desc" id="clear"`)
			})

			Convey("And the active sort button is highlighted", func() {
				So(body, ShouldContainSubstring, `class="btn sort active" href="/?q=go&amp;sort=desc"`)
			})
		})

		Convey("When the query contains markup", func() {
			w := do(mux, "GET", "/?q=%3Cscript%3E", "")

			Convey("Then it is escaped", func() {
				So(w.Body.String(), ShouldNotContainSubstring, "<script>")
			})
		})

		Convey("When the sort is unknown", func() {
			So(do(mux, "GET", "/?sort=up", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
