// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New builds a Config holding the defaults.
//   - Load layers defaults, an optional YAML file and CANDIDATES_ env vars.
//   - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import "time"

// DefaultAPIURL is the candidate API base URL used when none is configured.
const DefaultAPIURL = "http://localhost:5000"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIURL is the base URL of the candidate API; records are read from APIURL + "/api/candidates".
	APIURL string `koanf:"api_url"`

	// LoadTimeoutMS bounds a single load. Zero leaves the request unbounded.
	LoadTimeoutMS int `koanf:"load_timeout_ms"`

	// MaxSessions caps the number of live view sessions.
	MaxSessions int `koanf:"max_sessions"`

	// SessionTTLSeconds expires sessions idle for longer than this. Zero disables expiry.
	SessionTTLSeconds int `koanf:"session_ttl_s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		APIURL:            DefaultAPIURL,
		LoadTimeoutMS:     0,
		MaxSessions:       10_000,
		SessionTTLSeconds: 1800,
	}
}

// LoadTimeout returns LoadTimeoutMS as a duration.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMS) * time.Millisecond
}

// SessionTTL returns SessionTTLSeconds as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}
