package trial

// Config holds the day's feature limits and happy-hour policy for guest
// trials. It is owned by the backend and read-only on the client; a
// hardcoded default keeps the gate usable when the backend is unreachable.
type Config struct {
	Enabled            bool        `json:"enabled"`
	ChatMessagesPerDay int         `json:"chat_messages_per_day"`
	CallsPerDay        int         `json:"calls_per_day"`
	CallSeconds        int         `json:"call_seconds"`
	ReactionLimit      int         `json:"reaction_limit"`
	HappyHours         []HappyHour `json:"happy_hours"`
	RequireHappyHour   bool        `json:"require_happy_hour"`
}

// DefaultConfig returns the hardcoded safe default used whenever the remote
// configuration document is missing or unreachable.
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		ChatMessagesPerDay: 10,
		CallsPerDay:        2,
		CallSeconds:        300,
		ReactionLimit:      20,
		HappyHours:         nil,
		RequireHappyHour:   false,
	}
}

// Limit returns the per-day limit for the given feature.
func (c Config) Limit(f Feature) int {
	switch f {
	case FeatureChat:
		return c.ChatMessagesPerDay
	case FeatureCall:
		return c.CallsPerDay
	case FeatureReaction:
		return c.ReactionLimit
	default:
		return 0
	}
}

// ConfigPatch is a partially populated remote configuration document.
// Nil fields fall back to the default, so a sparse remote document never
// produces an invalid config.
type ConfigPatch struct {
	Enabled            *bool        `json:"enabled,omitempty"`
	ChatMessagesPerDay *int         `json:"chat_messages_per_day,omitempty"`
	CallsPerDay        *int         `json:"calls_per_day,omitempty"`
	CallSeconds        *int         `json:"call_seconds,omitempty"`
	ReactionLimit      *int         `json:"reaction_limit,omitempty"`
	HappyHours         *[]HappyHour `json:"happy_hours,omitempty"`
	RequireHappyHour   *bool        `json:"require_happy_hour,omitempty"`
}

// MergeConfig applies a partial remote document over the given base config
// and returns the result. Missing fields keep their base values.
func MergeConfig(base Config, patch ConfigPatch) Config {
	merged := base
	if patch.Enabled != nil {
		merged.Enabled = *patch.Enabled
	}
	if patch.ChatMessagesPerDay != nil {
		merged.ChatMessagesPerDay = *patch.ChatMessagesPerDay
	}
	if patch.CallsPerDay != nil {
		merged.CallsPerDay = *patch.CallsPerDay
	}
	if patch.CallSeconds != nil {
		merged.CallSeconds = *patch.CallSeconds
	}
	if patch.ReactionLimit != nil {
		merged.ReactionLimit = *patch.ReactionLimit
	}
	if patch.HappyHours != nil {
		merged.HappyHours = *patch.HappyHours
	}
	if patch.RequireHappyHour != nil {
		merged.RequireHappyHour = *patch.RequireHappyHour
	}
	return merged
}
