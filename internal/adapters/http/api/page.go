package api

import (
	"net/http"
	"net/url"

	"github.com/okian/candidateview/internal/domain/display"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/pkg/logger"
)

// PageHandler renders the candidate table as HTML. The view state lives in
// the page URL: q is the query and sort the chosen direction.
type PageHandler struct {
	deps CandidateDependencies
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps CandidateDependencies) *PageHandler {
	return &PageHandler{deps: deps}
}

type pageData struct {
	Query    string
	Sort     string
	Rows     []display.Row
	ClearURL string
	AscURL   string
	DescURL  string
	Asc      bool
	Desc     bool
}

// HandlePage handles GET /?q=&sort= requests.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_page"

	params := r.URL.Query()
	dir, err := projection.ParseSortDirective(params.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported_sort", WrapKind(op, ErrUnsupportedSort, err))
		return
	}
	query := params.Get("q")

	data := pageData{
		Query:    query,
		Rows:     display.Rows(h.deps.Project(r.Context(), query, dir)),
		ClearURL: pageURL("", dir),
		AscURL:   pageURL(query, projection.Ascending),
		DescURL:  pageURL(query, projection.Descending),
		Asc:      dir == projection.Ascending,
		Desc:     dir == projection.Descending,
	}
	if dir != projection.None {
		data.Sort = dir.String()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Get().Error(r.Context(), "render page failed", logger.Error(err))
	}
}

// pageURL links back to the page with the given state. None is left out of
// the URL, which is how the page represents it.
func pageURL(query string, dir projection.SortDirective) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if dir != projection.None {
		v.Set("sort", dir.String())
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
