package trial

import (
	"time"

	"guestgate/internal/shared/daykey"
)

// Usage holds per-day usage counters for one device. One logical record
// exists per device per day; a record whose DayKey differs from the current
// day is treated as all-zero without being rewritten in storage (lazy
// reset).
type Usage struct {
	DayKey        daykey.DayKey `json:"day_key"`
	ChatUsed      int           `json:"chat_used"`
	CallsUsed     int           `json:"calls_used"`
	SecondsUsed   int           `json:"seconds_used"`
	ReactionsUsed int           `json:"reactions_used"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ZeroUsage returns an empty usage record for the given day.
func ZeroUsage(day daykey.DayKey) Usage {
	return Usage{DayKey: day}
}

// ForDay returns the usage view effective on the given day. If the record
// belongs to a different day its counts read as zero; the stored record is
// left untouched until a new increment occurs.
func (u Usage) ForDay(day daykey.DayKey) Usage {
	if u.DayKey == day {
		return u
	}
	return ZeroUsage(day)
}

// Used returns the count consumed for the given feature.
func (u Usage) Used(f Feature) int {
	switch f {
	case FeatureChat:
		return u.ChatUsed
	case FeatureCall:
		return u.CallsUsed
	case FeatureReaction:
		return u.ReactionsUsed
	default:
		return 0
	}
}

// Increment returns a copy of the usage with the feature count raised by n,
// lazily reset to the given day first if the record is stale. Counts never
// decrease within a day.
func (u Usage) Increment(f Feature, n int, day daykey.DayKey, now time.Time) Usage {
	next := u.ForDay(day)
	switch f {
	case FeatureChat:
		next.ChatUsed += n
	case FeatureCall:
		next.CallsUsed += n
	case FeatureReaction:
		next.ReactionsUsed += n
	}
	next.UpdatedAt = now
	return next
}

// AddCallSeconds returns a copy with n seconds of call time accounted,
// lazily reset first if stale.
func (u Usage) AddCallSeconds(n int, day daykey.DayKey, now time.Time) Usage {
	next := u.ForDay(day)
	next.SecondsUsed += n
	next.UpdatedAt = now
	return next
}

// IsZero reports whether the record carries no consumption.
func (u Usage) IsZero() bool {
	return u.ChatUsed == 0 && u.CallsUsed == 0 && u.SecondsUsed == 0 && u.ReactionsUsed == 0
}

// Reconcile merges a locally tracked usage snapshot with a later-arriving
// remote snapshot. The remote record wins only when it belongs to the
// current day; a stale remote record (wrong day) is discarded in favor of
// the lazily reset local view, so a user never silently regains quota they
// already spent while offline.
func Reconcile(local, remote Usage, now time.Time) Usage {
	today := daykey.FromTime(now)
	if remote.DayKey == today {
		return remote
	}
	return local.ForDay(today)
}

// ReactionCounter is a purely local, additive counter for pre-auth
// reactions. Reactions are fire-and-forget, so they are tracked separately
// from the remote-sourced usage record and must not be lost to network
// latency or failure.
type ReactionCounter struct {
	DayKey daykey.DayKey `json:"day_key"`
	Count  int           `json:"count"`
}

// ForDay returns the counter view effective on the given day (lazy reset).
func (c ReactionCounter) ForDay(day daykey.DayKey) ReactionCounter {
	if c.DayKey == day {
		return c
	}
	return ReactionCounter{DayKey: day}
}

// Increment returns a copy with the count raised by one for the given day.
func (c ReactionCounter) Increment(day daykey.DayKey) ReactionCounter {
	next := c.ForDay(day)
	next.Count++
	return next
}
