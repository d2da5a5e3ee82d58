// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the terminal viewer.
package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/candidateview/internal/adapters/loader"
	"github.com/okian/candidateview/internal/adapters/repository"
	"github.com/okian/candidateview/internal/config"
	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/internal/domain/session"
	"github.com/okian/candidateview/pkg/logger"
	"github.com/okian/candidateview/pkg/metrics"
)

const (
	reloaderShutdownTimeout = 5 * time.Second
	minSweepInterval        = time.Second
)

// Service holds the candidate collection and the per-viewer sessions over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.MemoryStore
	projector *projection.Projector
	sessions  session.Registry
	loader    *loader.HTTPLoader
	reloader  *loader.Reloader

	// Configuration
	apiURL      string
	loadTimeout time.Duration
	maxSessions int
	sessionTTL  time.Duration
	httpClient  *http.Client

	// State
	started bool
	stopCh  chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAPIURL sets the base URL of the candidate API.
func WithAPIURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.apiURL = u
		}
	}
}

// WithLoadTimeout bounds each load. Zero means unbounded.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.loadTimeout = d
		}
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL expires sessions idle for longer than d. Zero disables expiry.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.sessionTTL = d
		}
	}
}

// WithHTTPClient sets the client used to reach the candidate API.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig applies the loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithAPIURL(cfg.APIURL)(s)
		WithLoadTimeout(cfg.LoadTimeout())(s)
		WithMaxSessions(cfg.MaxSessions)(s)
		WithSessionTTL(cfg.SessionTTL())(s)
	}
}

// New constructs a Service. The collection starts empty; Start triggers the first load.
func New(opts ...Option) *Service {
	s := &Service{
		apiURL:      config.DefaultAPIURL,
		maxSessions: 10_000,
		sessionTTL:  30 * time.Minute,
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = repository.NewMemoryStore()
	s.projector = projection.NewProjector()
	s.sessions = session.NewInMemoryRegistry(
		session.WithMaxSize(s.maxSessions),
		session.WithTTL(s.sessionTTL),
	)
	return s
}

// Start builds the loader, starts the reload worker and requests the initial
// load. It does not wait for the load: until it lands the collection is empty.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting candidate view service...", logger.String("api_url", s.apiURL))

	opts := []loader.Option{
		loader.WithTimeout(s.loadTimeout),
		loader.WithLogger(s.logger.Named("loader")),
	}
	if s.httpClient != nil {
		opts = append(opts, loader.WithHTTPClient(s.httpClient))
	}
	l, err := loader.NewHTTPLoader(s.apiURL, s.store, opts...)
	if err != nil {
		return fmt.Errorf("create loader: %w", err)
	}
	s.loader = l
	s.reloader = loader.NewReloader(l, loader.WithReloaderLogger(s.logger.Named("reloader")))

	s.stopCh = make(chan struct{})
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reloader.Run(runCtx)
	}()

	if s.sessionTTL > 0 {
		s.wg.Add(1)
		go s.sweepLoop(runCtx)
	}

	s.reloader.Trigger()
	s.started = true
	s.logger.Info(ctx, "candidate view service started",
		logger.String("endpoint", l.URL()),
		logger.Int("maxSessions", s.maxSessions),
		logger.String("sessionTTL", s.sessionTTL.String()),
	)
	return nil
}

func (s *Service) sweepLoop(ctx context.Context) {
	defer s.wg.Done()

	interval := s.sessionTTL / 2
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(ctx); n > 0 {
				s.logger.Debug(ctx, "expired sessions removed", logger.Int("count", n))
			}
		}
	}
}

// Stop waits for an in-flight load and stops background work.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping candidate view service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, reloaderShutdownTimeout)
	defer cancel()
	if err := s.reloader.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "reloader did not stop in time", logger.Error(err))
	}
	s.cancel()
	close(s.stopCh)
	s.wg.Wait()

	s.started = false
	s.logger.Info(ctx, "candidate view service stopped")
}

// Reload requests a new load. It reports false when the request merged into
// one already pending or the service is not running.
func (s *Service) Reload(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false
	}
	return s.reloader.Trigger()
}

// Candidates returns the held collection in load order.
func (s *Service) Candidates(ctx context.Context) []candidate.Record {
	return s.store.Get(ctx)
}

// Store exposes the collection store, for callers that load it themselves.
func (s *Service) Store() *repository.MemoryStore {
	return s.store
}

// Project filters and orders the held collection without touching any session.
func (s *Service) Project(ctx context.Context, query string, dir projection.SortDirective) []candidate.Record {
	return s.projector.Project(s.store.Get(ctx), query, dir)
}

// CreateSession starts a session with an empty query and no sorting.
func (s *Service) CreateSession(ctx context.Context) session.Session {
	return s.sessions.Create(ctx)
}

// View returns the session together with its projection of the current collection.
func (s *Service) View(ctx context.Context, id string) (session.Session, []candidate.Record, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return session.Session{}, nil, err
	}
	return sess, s.projector.Project(s.store.Get(ctx), sess.State.Query, sess.State.Sort), nil
}

// SetQuery replaces the session query verbatim.
func (s *Service) SetQuery(ctx context.Context, id, query string) (session.Session, error) {
	return s.sessions.Update(ctx, id, func(v *session.ViewState) error {
		v.SetQuery(query)
		return nil
	})
}

// ClearQuery empties the session query.
func (s *Service) ClearQuery(ctx context.Context, id string) (session.Session, error) {
	return s.sessions.Update(ctx, id, func(v *session.ViewState) error {
		v.ClearQuery()
		return nil
	})
}

// SelectSort sets the session sort direction. None is rejected.
func (s *Service) SelectSort(ctx context.Context, id string, dir projection.SortDirective) (session.Session, error) {
	return s.sessions.Update(ctx, id, func(v *session.ViewState) error {
		return v.SelectSort(dir)
	})
}

// DeleteSession ends a session, reporting whether it existed.
func (s *Service) DeleteSession(ctx context.Context, id string) bool {
	return s.sessions.Delete(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	snap := s.store.Snapshot(ctx)
	sessions := s.sessions.Len()

	stats := map[string]interface{}{
		"started":           s.started,
		"apiUrl":            s.apiURL,
		"collectionSize":    len(snap.Records),
		"collectionVersion": snap.Version,
		"sessions":          sessions,
		"maxSessions":       s.maxSessions,
	}
	if snap.Version > 0 {
		stats["loadedAt"] = snap.LoadedAt
	}
	if s.loader != nil {
		if last, ok := s.loader.Last(); ok {
			stats["lastLoad"] = last
		}
	}

	metrics.UpdateCollection(len(snap.Records), snap.Version)
	metrics.UpdateSessionsActive(sessions)
	return stats
}
