package gate

import (
	"context"
	"sync"
	"time"

	"guestgate/internal/domain/trial"
	"guestgate/internal/infrastructure/network"
	"guestgate/internal/infrastructure/retry"
	sharederrors "guestgate/internal/shared/errors"
	"guestgate/internal/shared/logger"
)

// ConfigLoader fetches the day's feature limits and happy-hour windows,
// falling back to the hardcoded default when offline or when the remote
// read fails terminally. The result is cached for the session.
type ConfigLoader struct {
	api      API
	observer network.Observer
	guard    *retry.Guard
	logger   logger.Interface

	maxRetries int
	baseDelay  time.Duration

	mu     sync.Mutex
	loaded *trial.Config
}

// NewConfigLoader creates a ConfigLoader.
func NewConfigLoader(
	api API,
	observer network.Observer,
	guard *retry.Guard,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Interface,
) *ConfigLoader {
	return &ConfigLoader{
		api:        api,
		observer:   observer,
		guard:      guard,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     log,
	}
}

// Load returns the effective trial config. Offline devices get the default
// immediately with no network attempt; online fetches go through the retry
// guard and merge the (possibly partial) remote document over the default.
// Load never fails: any terminal error resolves to the default.
func (l *ConfigLoader) Load(ctx context.Context) trial.Config {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded != nil {
		return *l.loaded
	}

	cfg := l.fetch(ctx)
	l.loaded = &cfg
	return cfg
}

// Invalidate drops the session cache so the next Load re-fetches.
func (l *ConfigLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = nil
}

func (l *ConfigLoader) fetch(ctx context.Context) trial.Config {
	def := trial.DefaultConfig()

	if !l.observer.Online() {
		l.logger.Infow("offline, using default trial config")
		return def
	}

	patch, err := retry.Value(ctx, l.guard, func(ctx context.Context) (*trial.ConfigPatch, error) {
		return l.api.GetTrialConfig(ctx)
	}, l.maxRetries, l.baseDelay)
	if err != nil {
		l.logger.Warnw("trial config fetch failed, using default", "error", err)
		return def
	}

	return trial.MergeConfig(def, *patch)
}

// SeedDefault writes the default config to the remote store when the
// document is observed missing. Plain check-then-write: a benign race can
// cause at most a redundant write of the same shared global document.
func (l *ConfigLoader) SeedDefault(ctx context.Context) error {
	_, err := l.api.GetTrialConfig(ctx)
	if err == nil {
		return nil
	}
	if !sharederrors.IsNotFoundError(err) {
		return err
	}

	def := trial.DefaultConfig()
	doc := trial.ConfigPatch{
		Enabled:            &def.Enabled,
		ChatMessagesPerDay: &def.ChatMessagesPerDay,
		CallsPerDay:        &def.CallsPerDay,
		CallSeconds:        &def.CallSeconds,
		ReactionLimit:      &def.ReactionLimit,
		HappyHours:         &def.HappyHours,
		RequireHappyHour:   &def.RequireHappyHour,
	}
	if err := l.api.PutTrialConfig(ctx, &doc); err != nil {
		return err
	}

	l.logger.Infow("seeded default trial config")
	return nil
}
