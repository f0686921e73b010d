package backend

import "guestgate/internal/domain/trial"

// DeviceInfo is sent with token issuance so the backend can bind the trial
// token to a browser/device. The fingerprint is a weak correlation hint,
// never a security boundary.
type DeviceInfo struct {
	DeviceID    string `json:"device_id"`
	Fingerprint string `json:"fingerprint"`
	Platform    string `json:"platform,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// TokenResult is the response of the token issuance RPC.
type TokenResult struct {
	DeviceToken string `json:"device_token"`
}

// ChatResult is the response of the guest chat RPC.
type ChatResult struct {
	Reply string `json:"reply"`
}

// UsageDocument is the remote usage record at trials/{deviceToken}. The
// backend owns the writes; the client reads it for display and
// reconciliation only.
type UsageDocument = trial.Usage

// ConfigDocument is the shared remote configuration at trialConfig/global.
// It may be partially populated; missing fields fall back to the hardcoded
// default on the client.
type ConfigDocument = trial.ConfigPatch

// apiResponse is the standard response envelope of the trial backend.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
