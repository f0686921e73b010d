// Package gate provides the application services of the guest trial gate:
// device identity bootstrap, trial token issuance, entitlement config
// loading, the usage ledger, and the gate controller callers go through to
// attempt a gated action.
package gate

import (
	"context"

	"guestgate/internal/infrastructure/backend"
)

// API is the trial backend surface consumed by the gate services. The
// production implementation is backend.Client; tests substitute mocks.
type API interface {
	IssueTrialToken(ctx context.Context, info backend.DeviceInfo) (string, error)
	GetTrialConfig(ctx context.Context) (*backend.ConfigDocument, error)
	PutTrialConfig(ctx context.Context, doc *backend.ConfigDocument) error
	GetTrialUsage(ctx context.Context, deviceToken string) (*backend.UsageDocument, error)
	GuestChat(ctx context.Context, deviceToken, message string) (string, error)
}

// Persisted local keys. Each value is a JSON document or a raw string,
// namespaced so the store can be shared with other app state.
const (
	keyDeviceID        = "guestgate:device_id"
	keyDeviceToken     = "guestgate:device_token"
	keyUsageSnapshot   = "guestgate:trial_usage"
	keyReactionCounter = "guestgate:reaction_counter"
)
