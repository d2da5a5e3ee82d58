package fixture

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/okian/candidateview/internal/domain/candidate"
)

// CandidatesPath is where the collection is served.
const CandidatesPath = "/api/candidates"

// Server serves a fixed collection at CandidatesPath.
type Server struct {
	records []candidate.Record
	hits    atomic.Int64
}

// NewServer creates a server for records.
func NewServer(records []candidate.Record) *Server {
	if records == nil {
		records = []candidate.Record{}
	}
	return &Server{records: records}
}

// Register attaches the collection route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+CandidatesPath, s.handleCandidates)
}

// Hits returns how many times the collection was requested.
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

func (s *Server) handleCandidates(w http.ResponseWriter, _ *http.Request) {
	s.hits.Add(1)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(s.records)
}
