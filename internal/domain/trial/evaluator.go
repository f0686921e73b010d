package trial

import (
	"time"

	"guestgate/internal/shared/daykey"
)

// Evaluator is the pure quota decision function. It combines config, usage
// and the current time into an allow/deny verdict per feature; it performs
// no I/O and never mutates its inputs.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() Evaluator {
	return Evaluator{}
}

// CanUse decides whether the feature may be used right now. Decision order:
//  1. disabled trials deny everything
//  2. when required, the local-time minute of day must fall inside at least
//     one happy-hour window, regardless of remaining quota
//  3. a usage record from another day counts as zero (evaluation only)
//  4. the per-feature count must be below the configured limit; reactions
//     add the local fire-and-forget counter to the server-observed count
func (Evaluator) CanUse(f Feature, cfg Config, usage Usage, localReactions int, now time.Time) bool {
	if !f.IsValid() {
		return false
	}
	if !cfg.Enabled {
		return false
	}
	if cfg.RequireHappyHour && !inHappyHour(cfg.HappyHours, now) {
		return false
	}

	effective := usage.ForDay(daykey.FromTime(now))
	used := effective.Used(f)
	if f == FeatureReaction {
		used += localReactions
	}
	return used < cfg.Limit(f)
}

// Remaining returns the quota left for the feature, never negative. A usage
// record from another day yields the full limit.
func (Evaluator) Remaining(f Feature, cfg Config, usage Usage, localReactions int, now time.Time) int {
	if !f.IsValid() || !cfg.Enabled {
		return 0
	}

	effective := usage.ForDay(daykey.FromTime(now))
	used := effective.Used(f)
	if f == FeatureReaction {
		used += localReactions
	}

	remaining := cfg.Limit(f) - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// inHappyHour checks the local-time minute of day against the windows.
func inHappyHour(windows []HappyHour, now time.Time) bool {
	minute := daykey.MinuteOfDay(now)
	for _, w := range windows {
		if w.Contains(minute) {
			return true
		}
	}
	return false
}
