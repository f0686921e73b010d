// Package retry provides a network-aware retry helper with exponential
// backoff. Every remote read in the trial gate goes through it so that
// transient network flakiness never surfaces directly to the caller.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"guestgate/internal/infrastructure/network"
	"guestgate/internal/shared/logger"
)

const (
	// onlineWaitTimeout bounds how long a retry attempt waits for the
	// network to come back before trying anyway.
	onlineWaitTimeout = 5 * time.Second

	// maxDelay caps the exponential backoff delay between attempts.
	maxDelay = 30 * time.Second
)

// Guard retries an operation with exponential backoff, waiting for an
// online signal instead of sleeping when the network is known to be down.
type Guard struct {
	observer network.Observer
	logger   logger.Interface
}

// NewGuard creates a Guard using the given connectivity observer.
func NewGuard(observer network.Observer, log logger.Interface) *Guard {
	return &Guard{
		observer: observer,
		logger:   log,
	}
}

// Do runs op up to maxRetries+1 times. On failure it waits for
// connectivity when offline, or backs off baseDelay*2^attempt otherwise.
// The last error is returned once the retry budget is exhausted.
func (g *Guard) Do(ctx context.Context, op func(ctx context.Context) error, maxRetries int, baseDelay time.Duration) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = baseDelay
	expBackoff.MaxInterval = maxDelay
	expBackoff.Multiplier = 2
	expBackoff.RandomizationFactor = 0
	expBackoff.Reset()

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt >= maxRetries {
			return lastErr
		}

		if !g.observer.Online() {
			// Offline: sleeping on a backoff timer is pointless, wait for
			// the connectivity signal instead (bounded).
			g.logger.Debugw("offline, waiting for connectivity before retry",
				"attempt", attempt+1,
				"error", lastErr,
			)
			if !g.observer.AwaitOnline(ctx, onlineWaitTimeout) && ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		delay := expBackoff.NextBackOff()
		if delay == backoff.Stop {
			return lastErr
		}

		g.logger.Debugw("retrying after backoff",
			"attempt", attempt+1,
			"delay", delay,
			"error", lastErr,
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Value runs fn through the guard and returns its result.
func Value[T any](ctx context.Context, g *Guard, fn func(ctx context.Context) (T, error), maxRetries int, baseDelay time.Duration) (T, error) {
	var result T
	err := g.Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = fn(ctx)
		return opErr
	}, maxRetries, baseDelay)
	return result, err
}
