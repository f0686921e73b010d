// Package network provides online/offline observation for the trial gate.
// Remote reads consult the observer before attempting the network and wait
// for connectivity to return instead of burning retries while offline.
package network

import (
	"context"
	"time"
)

// Observer reports the current connectivity state.
type Observer interface {
	// Online reports whether the network currently appears reachable.
	Online() bool
	// AwaitOnline blocks until the network appears reachable, the timeout
	// elapses, or ctx is canceled. It returns true when online.
	AwaitOnline(ctx context.Context, timeout time.Duration) bool
}
