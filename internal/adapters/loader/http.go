// Package loader fetches the candidate collection from the candidate API and
// hands it to the collection store.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/pkg/logger"
	"github.com/okian/candidateview/pkg/metrics"
)

// CandidatesPath is appended to the configured base URL.
const CandidatesPath = "/api/candidates"

// maxErrorBody caps how much of a failed response body is logged.
const maxErrorBody = 512

// Setter receives a successfully decoded collection.
type Setter interface {
	Set(ctx context.Context, records []candidate.Record)
}

// Loader performs one load of the collection.
type Loader interface {
	Load(ctx context.Context) error
}

// Result describes the most recent load.
type Result struct {
	At      time.Time `json:"at"`
	Outcome string    `json:"outcome"`
	Count   int       `json:"count"`
	Error   string    `json:"error,omitempty"`
}

// HTTPLoader issues a single GET per Load. It does not retry: a failed load is
// logged and the store keeps whatever it held before.
type HTTPLoader struct {
	client  *http.Client
	url     string
	store   Setter
	timeout time.Duration
	logger  logger.Logger
	now     func() time.Time

	mu   sync.RWMutex
	last *Result
}

// NewHTTPLoader creates a loader reading baseURL + CandidatesPath into store.
func NewHTTPLoader(baseURL string, store Setter, opts ...Option) (*HTTPLoader, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}
	endpoint, err := url.JoinPath(baseURL, CandidatesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	l := &HTTPLoader{
		client: &http.Client{},
		url:    endpoint,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named("loader")
	}
	return l, nil
}

// URL returns the endpoint the loader reads from.
func (l *HTTPLoader) URL() string {
	return l.url
}

// Load fetches and decodes the collection and, on success, replaces the store
// contents. Failures are logged and returned; the store is left untouched.
func (l *HTTPLoader) Load(ctx context.Context) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := l.now()
	records, outcome, err := l.fetch(ctx)
	elapsed := float64(l.now().Sub(start).Microseconds()) / 1000
	_ = metrics.RecordLoad(outcome, elapsed)

	res := Result{At: start, Outcome: outcome, Count: len(records)}
	if err != nil {
		res.Error = err.Error()
		l.setLast(res)
		l.logger.Error(ctx, "error fetching candidates",
			logger.String("url", l.url),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return err
	}

	if dups := candidate.DuplicateIDs(records); len(dups) > 0 {
		l.logger.Warn(ctx, "candidate ids are not unique",
			logger.Int("duplicates", len(dups)),
			logger.Any("ids", dups),
		)
		metrics.UpdateDuplicateIDs(len(dups))
	} else {
		metrics.UpdateDuplicateIDs(0)
	}

	l.store.Set(ctx, records)
	l.setLast(res)
	l.logger.Info(ctx, "candidates loaded",
		logger.String("url", l.url),
		logger.Int("count", len(records)),
		logger.Float64("duration_ms", elapsed),
	)
	return nil
}

func (l *HTTPLoader) fetch(ctx context.Context) ([]candidate.Record, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, metrics.LoadFetchError, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, metrics.LoadFetchError, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, metrics.LoadStatusError, fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, string(body))
	}

	records, err := candidate.DecodeList(resp.Body)
	if err != nil {
		return nil, metrics.LoadDecodeError, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return records, metrics.LoadSuccess, nil
}

func (l *HTTPLoader) setLast(r Result) {
	l.mu.Lock()
	l.last = &r
	l.mu.Unlock()
}

// Last returns the most recent load result, if any load has run.
func (l *HTTPLoader) Last() (Result, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return Result{}, false
	}
	return *l.last, true
}
