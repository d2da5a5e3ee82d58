package loader

import (
	"context"
	"sync"

	"github.com/okian/candidateview/pkg/logger"
	"github.com/okian/candidateview/pkg/metrics"
)

// Reloader serializes loads on a single goroutine. Triggers that arrive while a
// load is already pending are absorbed into it, so at most one load runs and at
// most one more waits behind it.
type Reloader struct {
	loader  Loader
	pending chan struct{}

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	onComplete func(error)
	logger     logger.Logger
}

// NewReloader creates a reloader around l.
func NewReloader(l Loader, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		loader:   l,
		pending:  make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("reloader")
	}
	return r
}

// Trigger requests a load without blocking. It reports false when the request
// was merged into one that is already pending.
func (r *Reloader) Trigger() bool {
	select {
	case r.pending <- struct{}{}:
		return true
	default:
		metrics.RecordReloadCoalesced()
		return false
	}
}

// Run processes triggers until ctx is canceled or Shutdown is called.
func (r *Reloader) Run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case <-r.pending:
			if r.stopping(ctx) {
				return
			}
			err := r.loader.Load(ctx)
			if err != nil {
				r.logger.Debug(ctx, "reload finished with error", logger.Error(err))
			}
			if r.onComplete != nil {
				r.onComplete(err)
			}
		}
	}
}

// stopping reports whether Shutdown was called or ctx is done. A pending
// trigger never starts a load after either.
func (r *Reloader) stopping(ctx context.Context) bool {
	select {
	case <-r.shutdown:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Shutdown stops the loop and waits for an in-flight load to return.
func (r *Reloader) Shutdown(ctx context.Context) error {
	r.shutdownOnce.Do(func() { close(r.shutdown) })

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ErrShutdownWait
	}
}
