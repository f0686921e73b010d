// Package trial provides domain models and business logic for guest trial
// entitlements: per-day feature quotas, happy-hour availability windows,
// and the pure quota decision function.
package trial

// Feature represents a metered guest feature
type Feature string

const (
	// FeatureChat represents AI chat replies (awaited round-trip)
	FeatureChat Feature = "chat"
	// FeatureCall represents voice/video call starts (awaited round-trip)
	FeatureCall Feature = "call"
	// FeatureReaction represents lightweight reactions (fire-and-forget)
	FeatureReaction Feature = "reaction"
)

// IsValid checks if the feature is valid
func (f Feature) IsValid() bool {
	switch f {
	case FeatureChat, FeatureCall, FeatureReaction:
		return true
	default:
		return false
	}
}

// String returns the string representation of the feature
func (f Feature) String() string {
	return string(f)
}

// IsAwaited reports whether the feature routes through an awaited backend
// call. Awaited features consume quota only after the action succeeds;
// fire-and-forget features consume quota optimistically up front.
func (f Feature) IsAwaited() bool {
	switch f {
	case FeatureChat, FeatureCall:
		return true
	default:
		return false
	}
}

// HappyHour is a time-of-day availability window expressed in minutes since
// local midnight. The window is half-open: [StartMin, EndMin).
type HappyHour struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// Contains reports whether the given minute of day falls inside the window.
// Windows with StartMin > EndMin (wrapping past midnight) match nothing;
// wraparound semantics are deliberately not implemented.
func (h HappyHour) Contains(minuteOfDay int) bool {
	return minuteOfDay >= h.StartMin && minuteOfDay < h.EndMin
}
