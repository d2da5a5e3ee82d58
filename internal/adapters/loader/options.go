package loader

import (
	"net/http"
	"time"

	"github.com/okian/candidateview/pkg/logger"
)

// Option applies a configuration option to the HTTPLoader.
type Option func(*HTTPLoader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds each load. Zero leaves loads unbounded.
func WithTimeout(d time.Duration) Option {
	return func(l *HTTPLoader) {
		if d >= 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used to report load failures.
func WithLogger(lg logger.Logger) Option {
	return func(l *HTTPLoader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *HTTPLoader) {
		if now != nil {
			l.now = now
		}
	}
}

// ReloaderOption applies a configuration option to the Reloader.
type ReloaderOption func(*Reloader)

// WithReloaderLogger sets the reloader logger.
func WithReloaderLogger(lg logger.Logger) ReloaderOption {
	return func(r *Reloader) {
		if lg != nil {
			r.logger = lg
		}
	}
}

// WithOnComplete registers a callback invoked after every load with its error, if any.
func WithOnComplete(fn func(error)) ReloaderOption {
	return func(r *Reloader) {
		r.onComplete = fn
	}
}
