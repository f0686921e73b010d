package gate

import (
	"context"
	"sync"
	"time"

	"guestgate/internal/domain/trial"
	"guestgate/internal/infrastructure/network"
	"guestgate/internal/infrastructure/retry"
	"guestgate/internal/infrastructure/storage"
	"guestgate/internal/shared/clock"
	"guestgate/internal/shared/logger"
)

// Service is the explicitly constructed trial gate instance. It owns the
// component wiring and a one-shot startup guard, replacing any notion of a
// module-global singleton: construct it at application startup, inject it
// into callers, and let it die with the session.
type Service struct {
	identity *DeviceIdentity
	issuer   *TokenIssuer
	configs  *ConfigLoader
	ledger   *UsageLedger
	gate     *Controller
	api      API
	guard    *retry.Guard
	clock    clock.Clock
	logger   logger.Interface

	maxRetries int
	baseDelay  time.Duration

	startOnce sync.Once
	started   bool
	token     string
}

// Deps carries the external collaborators of the Service.
type Deps struct {
	API        API
	Store      storage.KeyValueStore
	Observer   network.Observer
	Clock      clock.Clock
	Logger     logger.Interface
	MaxRetries int
	BaseDelay  time.Duration
}

// NewService wires the gate components from their dependencies.
func NewService(deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.System()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewLogger()
	}

	guard := retry.NewGuard(deps.Observer, deps.Logger)
	identity := NewDeviceIdentity(deps.Store, deps.Logger)
	issuer := NewTokenIssuer(deps.API, deps.Store, identity, guard, deps.MaxRetries, deps.BaseDelay, deps.Logger)
	configs := NewConfigLoader(deps.API, deps.Observer, guard, deps.MaxRetries, deps.BaseDelay, deps.Logger)
	ledger := NewUsageLedger(deps.Store, deps.Clock, deps.Logger)
	controller := NewController(configs, ledger, deps.Clock, deps.Logger)

	return &Service{
		identity:   identity,
		issuer:     issuer,
		configs:    configs,
		ledger:     ledger,
		gate:       controller,
		api:        deps.API,
		guard:      guard,
		clock:      deps.Clock,
		logger:     deps.Logger,
		maxRetries: deps.MaxRetries,
		baseDelay:  deps.BaseDelay,
	}
}

// Start bootstraps the guest session exactly once: device identity, trial
// token, entitlement config, and a best-effort usage refresh. Subsequent
// calls are no-ops. Start never fails; every remote dependency degrades to
// a local default.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		deviceID := s.identity.DeviceID()
		s.token = s.issuer.EnsureToken(ctx)
		cfg := s.configs.Load(ctx)
		s.RefreshUsage(ctx)
		s.started = true

		s.logger.Infow("trial gate started",
			"device_id", deviceID,
			"fallback_token", IsFallback(s.token),
			"trial_enabled", cfg.Enabled,
		)
	})
}

// Close tears down the service. Currently a no-op hook kept so callers
// can defer it symmetrically with Start.
func (s *Service) Close() error {
	return nil
}

// Gate returns the controller callers use to attempt gated actions.
func (s *Service) Gate() *Controller {
	return s.gate
}

// Ledger exposes the usage ledger, e.g. for recording call seconds.
func (s *Service) Ledger() *UsageLedger {
	return s.ledger
}

// Token returns the device token established by Start.
func (s *Service) Token() string {
	return s.token
}

// RefreshUsage fetches the remote usage record for the current token and
// reconciles it into the ledger. Failures are logged and ignored: local
// usage survives so quota already spent offline is not silently regained.
func (s *Service) RefreshUsage(ctx context.Context) {
	token := s.issuer.EnsureToken(ctx)
	if IsFallback(token) {
		// The backend has no record for locally synthesized tokens.
		return
	}

	remote, err := retry.Value(ctx, s.guard, func(ctx context.Context) (*trial.Usage, error) {
		return s.api.GetTrialUsage(ctx, token)
	}, s.maxRetries, s.baseDelay)
	if err != nil {
		s.logger.Warnw("usage refresh failed, keeping local snapshot", "error", err)
		return
	}

	s.ledger.Reconcile(*remote)
}

// Chat sends a guest chat message through the gate and returns the reply.
func (s *Service) Chat(ctx context.Context, authenticated bool, message string) (string, trial.Result) {
	var reply string
	result := s.gate.Attempt(ctx, trial.FeatureChat, authenticated, func(ctx context.Context) error {
		var err error
		reply, err = s.api.GuestChat(ctx, s.Token(), message)
		return err
	})
	return reply, result
}

// SeedConfig writes the default trial config to the remote store if the
// document is missing. Safe to call repeatedly.
func (s *Service) SeedConfig(ctx context.Context) error {
	return s.configs.SeedDefault(ctx)
}

// FeatureStatus summarizes one feature's quota position.
type FeatureStatus struct {
	Feature   trial.Feature
	Limit     int
	Used      int
	Remaining int
	Usable    bool
}

// Status reports the quota position for every feature, for display.
func (s *Service) Status(ctx context.Context) []FeatureStatus {
	cfg := s.configs.Load(ctx)
	usage := s.ledger.Usage()
	now := s.clock.Now()
	evaluator := trial.NewEvaluator()

	features := []trial.Feature{trial.FeatureChat, trial.FeatureCall, trial.FeatureReaction}
	statuses := make([]FeatureStatus, 0, len(features))
	for _, f := range features {
		used := usage.Used(f)
		if f == trial.FeatureReaction {
			used += s.ledger.LocalReactions()
		}
		statuses = append(statuses, FeatureStatus{
			Feature:   f,
			Limit:     cfg.Limit(f),
			Used:      used,
			Remaining: evaluator.Remaining(f, cfg, usage, s.ledger.LocalReactions(), now),
			Usable:    evaluator.CanUse(f, cfg, usage, s.ledger.LocalReactions(), now),
		})
	}
	return statuses
}
