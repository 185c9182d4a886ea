package config

import "time"

// Default configuration values
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "text"
	DefaultServiceName = "fitstake-sync"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	// DefaultHTTPTimeout bounds every backend call. The cache's
	// stale-serving fallback applies uniformly to timeouts and errors.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultMaxRetries is the retry budget for idempotent backend reads
	DefaultMaxRetries = 2

	// DefaultFreshnessWindow is how long a cached collection is served
	// without triggering a background refresh
	DefaultFreshnessWindow = 30 * time.Second

	// DefaultAutoSyncInterval drives the optional background refresh timer
	DefaultAutoSyncInterval = 30 * time.Second
)
