package trial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guestgate/internal/shared/daykey"
)

func testConfig() Config {
	return Config{
		Enabled:            true,
		ChatMessagesPerDay: 3,
		CallsPerDay:        2,
		CallSeconds:        300,
		ReactionLimit:      5,
	}
}

func TestCanUse_DisabledDeniesEverything(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()
	cfg.Enabled = false

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	usage := ZeroUsage(daykey.FromTime(now))

	for _, f := range []Feature{FeatureChat, FeatureCall, FeatureReaction} {
		assert.False(t, e.CanUse(f, cfg, usage, 0, now), "feature %s should be denied when trials are disabled", f)
		assert.Equal(t, 0, e.Remaining(f, cfg, usage, 0, now))
	}
}

func TestCanUse_ChatLimitReached(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	usage := Usage{DayKey: daykey.FromTime(now), ChatUsed: 3}

	assert.False(t, e.CanUse(FeatureChat, cfg, usage, 0, now))
	assert.Equal(t, 0, e.Remaining(FeatureChat, cfg, usage, 0, now))

	usage.ChatUsed = 2
	assert.True(t, e.CanUse(FeatureChat, cfg, usage, 0, now))
	assert.Equal(t, 1, e.Remaining(FeatureChat, cfg, usage, 0, now))
}

func TestCanUse_ReactionSumsLocalAndServerCounts(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	usage := Usage{DayKey: daykey.FromTime(now), ReactionsUsed: 1}

	// 1 server-observed + 4 local = 5, at the limit
	assert.False(t, e.CanUse(FeatureReaction, cfg, usage, 4, now))
	assert.Equal(t, 0, e.Remaining(FeatureReaction, cfg, usage, 4, now))

	assert.True(t, e.CanUse(FeatureReaction, cfg, usage, 3, now))
	assert.Equal(t, 1, e.Remaining(FeatureReaction, cfg, usage, 3, now))
}

func TestCanUse_HappyHourOutsideWindowDeniesAll(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()
	cfg.RequireHappyHour = true
	cfg.HappyHours = []HappyHour{{StartMin: 18 * 60, EndMin: 20 * 60}}

	at21 := time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)
	usage := ZeroUsage(daykey.FromTime(at21))

	for _, f := range []Feature{FeatureChat, FeatureCall, FeatureReaction} {
		assert.False(t, e.CanUse(f, cfg, usage, 0, at21), "feature %s should be denied outside happy hour", f)
	}

	at19 := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	assert.True(t, e.CanUse(FeatureChat, cfg, usage, 0, at19))
}

func TestCanUse_HappyHourBoundaries(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()
	cfg.RequireHappyHour = true
	cfg.HappyHours = []HappyHour{{StartMin: 18 * 60, EndMin: 20 * 60}}

	usage := ZeroUsage("20260901")

	// Half-open window: start is in, end is out.
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	assert.True(t, e.CanUse(FeatureChat, cfg, usage, 0, start))
	assert.False(t, e.CanUse(FeatureChat, cfg, usage, 0, end))
}

func TestCanUse_StaleUsageCountsAsZero(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()

	now := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	yesterday := Usage{DayKey: "20260901", ChatUsed: 3}

	assert.True(t, e.CanUse(FeatureChat, cfg, yesterday, 0, now))
	assert.Equal(t, cfg.ChatMessagesPerDay, e.Remaining(FeatureChat, cfg, yesterday, 0, now))
}

func TestRemaining_NeverNegative(t *testing.T) {
	e := NewEvaluator()
	cfg := testConfig()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	usage := Usage{DayKey: daykey.FromTime(now), ChatUsed: 99, CallsUsed: 99, ReactionsUsed: 99}

	for _, f := range []Feature{FeatureChat, FeatureCall, FeatureReaction} {
		assert.GreaterOrEqual(t, e.Remaining(f, cfg, usage, 42, now), 0)
	}
}

func TestCanUse_InvalidFeature(t *testing.T) {
	e := NewEvaluator()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, e.CanUse(Feature("video"), testConfig(), ZeroUsage(daykey.FromTime(now)), 0, now))
}

func TestHappyHour_WrapAroundWindowMatchesNothing(t *testing.T) {
	// Windows with start > end are not given wraparound semantics.
	w := HappyHour{StartMin: 23 * 60, EndMin: 1 * 60}

	assert.False(t, w.Contains(23*60+30))
	assert.False(t, w.Contains(30))
	assert.False(t, w.Contains(12*60))
}
