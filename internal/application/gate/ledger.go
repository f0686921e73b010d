package gate

import (
	"encoding/json"
	"sync"

	"guestgate/internal/domain/trial"
	"guestgate/internal/infrastructure/storage"
	"guestgate/internal/shared/clock"
	"guestgate/internal/shared/daykey"
	"guestgate/internal/shared/logger"
)

// UsageLedger holds the per-day usage counters. The in-memory record is
// remote-sourced when the last reconcile succeeded for the current day and
// locally persisted otherwise; the separate reaction counter is purely
// local so fire-and-forget reaction events survive network failure.
//
// The ledger performs no network I/O itself; callers feed it remote
// snapshots through Reconcile. A failed remote fetch therefore never erases
// a previously observed non-zero local count.
type UsageLedger struct {
	store  storage.KeyValueStore
	clock  clock.Clock
	logger logger.Interface

	mu        sync.Mutex
	usage     trial.Usage
	reactions trial.ReactionCounter
}

// NewUsageLedger creates a ledger, restoring the persisted snapshots.
// Storage corruption or absence reads as a zero state (fail-open; the
// backend remains authoritative for anything metered).
func NewUsageLedger(store storage.KeyValueStore, clk clock.Clock, log logger.Interface) *UsageLedger {
	l := &UsageLedger{
		store:  store,
		clock:  clk,
		logger: log,
	}
	l.restore()
	return l
}

// Usage returns the usage record effective for the current day. A stored
// record from another day reads as zero without being rewritten.
func (l *UsageLedger) Usage() trial.Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.usage.ForDay(l.today())
}

// RecordLocal optimistically increments the feature count before any
// network confirmation, lazily resetting the record first on day rollover.
func (l *UsageLedger) RecordLocal(f trial.Feature, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.usage = l.usage.Increment(f, n, daykey.FromTime(now), now)
	l.persistUsage()
}

// RecordCallSeconds accounts call time after a call ends.
func (l *UsageLedger) RecordCallSeconds(seconds int) {
	if seconds <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.usage = l.usage.AddCallSeconds(seconds, daykey.FromTime(now), now)
	l.persistUsage()
}

// Reconcile overwrites the in-memory usage with a remote record, but only
// when the remote record belongs to the current day; stale remote data is
// discarded in favor of the lazily reset local state.
func (l *UsageLedger) Reconcile(remote trial.Usage) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if remote.DayKey != daykey.FromTime(now) {
		l.logger.Debugw("discarded stale remote usage",
			"remote_day", remote.DayKey,
			"today", daykey.FromTime(now),
		)
	}
	l.usage = trial.Reconcile(l.usage, remote, now)
	l.persistUsage()
}

// RecordReaction increments the local fire-and-forget reaction counter. It
// never touches the remote-sourced reactions count.
func (l *UsageLedger) RecordReaction() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reactions = l.reactions.Increment(l.today())
	l.persistReactions()
}

// LocalReactions returns the local reaction count for the current day.
func (l *UsageLedger) LocalReactions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reactions.ForDay(l.today()).Count
}

func (l *UsageLedger) today() daykey.DayKey {
	return daykey.FromTime(l.clock.Now())
}

func (l *UsageLedger) restore() {
	if raw, err := l.store.Get(keyUsageSnapshot); err == nil {
		var u trial.Usage
		if err := json.Unmarshal(raw, &u); err != nil {
			l.logger.Warnw("corrupt usage snapshot, starting from zero", "error", err)
		} else {
			l.usage = u
		}
	}

	if raw, err := l.store.Get(keyReactionCounter); err == nil {
		var c trial.ReactionCounter
		if err := json.Unmarshal(raw, &c); err != nil {
			l.logger.Warnw("corrupt reaction counter, starting from zero", "error", err)
		} else {
			l.reactions = c
		}
	}
}

func (l *UsageLedger) persistUsage() {
	raw, err := json.Marshal(l.usage)
	if err != nil {
		l.logger.Errorw("failed to marshal usage snapshot", "error", err)
		return
	}
	if err := l.store.Set(keyUsageSnapshot, raw); err != nil {
		l.logger.Warnw("failed to persist usage snapshot", "error", err)
	}
}

func (l *UsageLedger) persistReactions() {
	raw, err := json.Marshal(l.reactions)
	if err != nil {
		l.logger.Errorw("failed to marshal reaction counter", "error", err)
		return
	}
	if err := l.store.Set(keyReactionCounter, raw); err != nil {
		l.logger.Warnw("failed to persist reaction counter", "error", err)
	}
}
