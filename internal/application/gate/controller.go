package gate

import (
	"context"

	"guestgate/internal/domain/trial"
	"guestgate/internal/shared/clock"
	"guestgate/internal/shared/logger"
)

// Action is the gated operation supplied by the caller.
type Action func(ctx context.Context) error

// Controller is the single entry point for attempting a gated action. It
// wires the quota decision to the caller's action: optimistic increment for
// fire-and-forget features, increment-on-success for awaited ones.
type Controller struct {
	evaluator trial.Evaluator
	configs   *ConfigLoader
	ledger    *UsageLedger
	clock     clock.Clock
	logger    logger.Interface
}

// NewController creates a gate Controller.
func NewController(configs *ConfigLoader, ledger *UsageLedger, clk clock.Clock, log logger.Interface) *Controller {
	return &Controller{
		evaluator: trial.NewEvaluator(),
		configs:   configs,
		ledger:    ledger,
		clock:     clk,
		logger:    log,
	}
}

// Attempt runs action behind the quota gate.
//
// Authenticated users bypass all quota logic. Guests are checked against
// the current config and usage: a denial returns VerdictQuotaExceeded
// without invoking the action (the caller surfaces an upsell). When
// allowed, reactions consume quota up front and run fire-and-forget;
// awaited features (chat, call) run first and consume quota only on
// success, so a failed backend call does not burn an attempt — that case
// surfaces as VerdictActionFailed, never as a quota denial.
func (c *Controller) Attempt(ctx context.Context, f trial.Feature, authenticated bool, action Action) trial.Result {
	if authenticated {
		if err := action(ctx); err != nil {
			return trial.Result{Verdict: trial.VerdictActionFailed, Err: err}
		}
		return trial.Result{Verdict: trial.VerdictBypassed}
	}

	cfg := c.configs.Load(ctx)
	usage := c.ledger.Usage()
	now := c.clock.Now()

	if !c.evaluator.CanUse(f, cfg, usage, c.ledger.LocalReactions(), now) {
		c.logger.Infow("gated action denied",
			"feature", f,
			"used", usage.Used(f),
			"limit", cfg.Limit(f),
		)
		return trial.Result{Verdict: trial.VerdictQuotaExceeded}
	}

	if !f.IsAwaited() {
		c.ledger.RecordReaction()
		if err := action(ctx); err != nil {
			return trial.Result{Verdict: trial.VerdictActionFailed, Err: err}
		}
		return trial.Result{Verdict: trial.VerdictAllowed}
	}

	if err := action(ctx); err != nil {
		return trial.Result{Verdict: trial.VerdictActionFailed, Err: err}
	}

	c.ledger.RecordLocal(f, 1)
	return trial.Result{Verdict: trial.VerdictAllowed}
}

// Remaining returns the quota left for the feature right now.
func (c *Controller) Remaining(ctx context.Context, f trial.Feature) int {
	return c.evaluator.Remaining(f, c.configs.Load(ctx), c.ledger.Usage(), c.ledger.LocalReactions(), c.clock.Now())
}

// CanUse reports the current allow/deny decision without consuming quota.
func (c *Controller) CanUse(ctx context.Context, f trial.Feature) bool {
	return c.evaluator.CanUse(f, c.configs.Load(ctx), c.ledger.Usage(), c.ledger.LocalReactions(), c.clock.Now())
}
