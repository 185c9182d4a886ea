// Package feeconfig owns the cached platform fee configuration. The fee
// percentage is remote, mutable and consulted on every enrichment pass, so
// the loader caches it as a singleton: lazily loaded on first need, held
// until explicitly invalidated, and never silently re-fetched in the middle
// of a calculation batch.
package feeconfig

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fitstake/fitstake-go/internal/domain"
	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/remote"
)

// Fallback fee values used when the settings endpoint is unreachable.
// The fallback is served, never cached, so the next read retries the fetch.
const (
	FallbackFeePercent = 10
	FallbackMinBet     = 10
	FallbackMaxBet     = 1000
)

// Error context strings
const (
	ErrContextLoadSettings = "failed to load platform settings"
)

// Log messages
const (
	LogMsgSettingsLoaded      = "Platform settings loaded"
	LogMsgSettingsLoadFailed  = "Failed to load platform settings, serving fallback"
	LogMsgSettingsInvalidated = "Platform settings cache invalidated"
	LogMsgFeeOutOfRange       = "Settings response carried fee percentage out of range"
)

// SettingsFetcher is the slice of the remote gateway the loader needs
type SettingsFetcher interface {
	GetSettings(ctx context.Context) (*domain.FeeConfig, error)
}

// Fallback returns the hardcoded fee configuration served when no cached
// value exists and the settings endpoint cannot be reached.
func Fallback() domain.FeeConfig {
	return domain.FeeConfig{
		PlatformFeePercent: FallbackFeePercent,
		MinBet:             FallbackMinBet,
		MaxBet:             FallbackMaxBet,
	}
}

type inflightLoad struct {
	done chan struct{}
	cfg  domain.FeeConfig
	err  error
}

// Loader fetches and caches the platform fee configuration.
// Concurrent loads coalesce onto one network call.
type Loader struct {
	fetcher SettingsFetcher

	mu       sync.Mutex
	cached   *domain.FeeConfig
	inflight *inflightLoad
	gen      uint64
}

// NewLoader creates a fee configuration loader
func NewLoader(fetcher SettingsFetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Current returns the cached config without triggering a load
func (l *Loader) Current() (domain.FeeConfig, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached == nil {
		return domain.FeeConfig{}, false
	}
	return *l.cached, true
}

// Load fetches the settings from the backend. On success the cached config
// is replaced atomically; on failure (network error, non-2xx, malformed or
// out-of-range body) any existing cached config is left untouched and the
// error is returned for the caller to apply its fallback policy.
// Concurrent callers attach to the in-flight fetch.
func (l *Loader) Load(ctx context.Context) (domain.FeeConfig, error) {
	l.mu.Lock()
	if l.inflight != nil {
		waiting := l.inflight
		l.mu.Unlock()
		select {
		case <-waiting.done:
			return waiting.cfg, waiting.err
		case <-ctx.Done():
			return domain.FeeConfig{}, ctx.Err()
		}
	}

	load := &inflightLoad{done: make(chan struct{})}
	l.inflight = load
	gen := l.gen
	l.mu.Unlock()

	cfg, err := l.fetch(ctx)

	l.mu.Lock()
	if l.inflight == load {
		l.inflight = nil
	}
	// An invalidation during the fetch means the result may predate a
	// settings mutation; discard it and let the next read re-fetch.
	if err == nil && gen == l.gen {
		stored := cfg
		l.cached = &stored
	}
	l.mu.Unlock()

	load.cfg = cfg
	load.err = err
	close(load.done)

	return cfg, err
}

func (l *Loader) fetch(ctx context.Context) (domain.FeeConfig, error) {
	settings, err := l.fetcher.GetSettings(ctx)
	if err != nil {
		return domain.FeeConfig{}, fmt.Errorf("%s: %w", ErrContextLoadSettings, err)
	}
	if !settings.Valid() {
		logger.FromContext(ctx).Warn(LogMsgFeeOutOfRange, "fee_percent", settings.PlatformFeePercent)
		return domain.FeeConfig{}, fmt.Errorf("%s: %w", ErrContextLoadSettings, domain.ErrValidation)
	}

	cfg := *settings
	cfg.FetchedAt = time.Now()
	logger.FromContext(ctx).Debug(LogMsgSettingsLoaded, "fee_percent", cfg.PlatformFeePercent)
	return cfg, nil
}

// Config returns the cached config, loading it on first need. When the load
// fails the fallback is returned but not cached, so a later call retries
// the network rather than trusting the fallback as loaded.
func (l *Loader) Config(ctx context.Context) domain.FeeConfig {
	if cfg, ok := l.Current(); ok {
		return cfg
	}

	result := remote.Result[domain.FeeConfig]{}
	result.Value, result.Err = l.Load(ctx)
	if result.Err != nil {
		logger.FromContext(ctx).Warn(LogMsgSettingsLoadFailed, "error", result.Err)
	}
	return result.WithFallback(Fallback())
}

// PlatformFeePercent resolves the current fee percentage, serving the
// fallback value when nothing is cached and the backend is unreachable
func (l *Loader) PlatformFeePercent(ctx context.Context) float64 {
	return l.Config(ctx).PlatformFeePercent
}

// Invalidate clears the cached config so the next read re-fetches. The
// in-flight handle is detached so later loads do not coalesce onto a fetch
// that predates the mutation. Called on any platform settings mutation and
// on session reset.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
	l.inflight = nil
	l.gen++
	logger.Debug(LogMsgSettingsInvalidated)
}
