package gate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"guestgate/internal/infrastructure/retry"
	"guestgate/internal/infrastructure/storage"
	"guestgate/internal/shared/id"
	"guestgate/internal/shared/logger"
)

// TokenIssuer obtains the opaque device-bound trial token once and keeps
// returning it. When issuance fails it synthesizes a local fallback token
// with a distinguishable prefix; that token enables local-only usage
// counting but carries no server-side entitlement weight.
type TokenIssuer struct {
	api      API
	store    storage.KeyValueStore
	identity *DeviceIdentity
	guard    *retry.Guard
	logger   logger.Interface

	maxRetries int
	baseDelay  time.Duration

	mu    sync.Mutex
	token string
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(
	api API,
	store storage.KeyValueStore,
	identity *DeviceIdentity,
	guard *retry.Guard,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Interface,
) *TokenIssuer {
	return &TokenIssuer{
		api:        api,
		store:      store,
		identity:   identity,
		guard:      guard,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     log,
	}
}

// EnsureToken returns the persisted token unchanged when one exists,
// otherwise requests one from the backend and persists it. Issuance
// failures never propagate: the issuer degrades to a local fallback token
// and offline-mode usage counting.
func (t *TokenIssuer) EnsureToken(ctx context.Context) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" {
		return t.token
	}

	if raw, err := t.store.Get(keyDeviceToken); err == nil && len(raw) > 0 {
		t.token = string(raw)
		return t.token
	}

	token, err := retry.Value(ctx, t.guard, func(ctx context.Context) (string, error) {
		return t.api.IssueTrialToken(ctx, t.identity.Info())
	}, t.maxRetries, t.baseDelay)
	if err != nil {
		token = t.fallbackToken()
		t.logger.Warnw("trial token issuance failed, degrading to local token",
			"error", err,
			"token_prefix", id.PrefixLocalToken,
		)
	}

	t.token = token
	if err := t.store.Set(keyDeviceToken, []byte(token)); err != nil {
		t.logger.Warnw("failed to persist device token", "error", err)
	}
	return t.token
}

// IsFallback reports whether the given token was synthesized locally.
func IsFallback(token string) bool {
	return id.HasPrefix(token, id.PrefixLocalToken)
}

func (t *TokenIssuer) fallbackToken() string {
	token, err := id.GenerateWithPrefix(id.PrefixLocalToken, id.DefaultLength)
	if err != nil {
		// crypto/rand failure is about as likely as a broken runtime, but a
		// uuid still beats no token at all.
		return id.PrefixLocalToken + "_" + uuid.NewString()
	}
	return token
}
