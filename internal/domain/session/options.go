package session

import "time"

// Option applies a configuration option to the registry.
type Option func(*inMemoryRegistry)

// WithMaxSize bounds the number of live sessions. Values <= 0 mean unbounded.
func WithMaxSize(size int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = size
	}
}

// WithTTL expires sessions not touched for ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(r *inMemoryRegistry) {
		if ttl >= 0 {
			r.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *inMemoryRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *inMemoryRegistry) {
		if gen != nil {
			r.newID = gen
		}
	}
}
