package trial

// Verdict is the first-class outcome of a gated action attempt. Quota
// exhaustion is a decision value, not an error: the caller surfaces an
// upsell for VerdictQuotaExceeded and an ordinary failure state for
// VerdictActionFailed, and must not conflate the two.
type Verdict string

const (
	// VerdictAllowed indicates the action ran and its usage was recorded.
	VerdictAllowed Verdict = "allowed"
	// VerdictBypassed indicates an authenticated user skipped quota logic.
	VerdictBypassed Verdict = "bypassed"
	// VerdictQuotaExceeded indicates the action was denied before invocation.
	VerdictQuotaExceeded Verdict = "quota_exceeded"
	// VerdictActionFailed indicates the action itself failed; no quota was
	// consumed and the failure is unrelated to the trial allowance.
	VerdictActionFailed Verdict = "action_failed"
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// Allowed reports whether the action was actually invoked and succeeded.
func (v Verdict) Allowed() bool {
	return v == VerdictAllowed || v == VerdictBypassed
}

// Result carries the verdict of a gate attempt plus the action error when
// the verdict is VerdictActionFailed.
type Result struct {
	Verdict Verdict
	Err     error
}

// Allowed reports whether the attempted action was invoked and succeeded.
func (r Result) Allowed() bool {
	return r.Verdict.Allowed()
}
