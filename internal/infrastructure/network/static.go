package network

import (
	"context"
	"sync"
	"time"
)

// StaticObserver is an Observer with a manually controlled state. It serves
// environments with no connectivity signal (always-online deployments) and
// tests that script offline windows.
type StaticObserver struct {
	mu     sync.Mutex
	online bool
	waiter chan struct{}
}

// NewStaticObserver creates a StaticObserver in the given initial state.
func NewStaticObserver(online bool) *StaticObserver {
	return &StaticObserver{online: online}
}

func (o *StaticObserver) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

// SetOnline flips the state and wakes any AwaitOnline callers when the
// network comes back.
func (o *StaticObserver) SetOnline(online bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.online == online {
		return
	}
	o.online = online
	if online && o.waiter != nil {
		close(o.waiter)
		o.waiter = nil
	}
}

func (o *StaticObserver) AwaitOnline(ctx context.Context, timeout time.Duration) bool {
	o.mu.Lock()
	if o.online {
		o.mu.Unlock()
		return true
	}
	if o.waiter == nil {
		o.waiter = make(chan struct{})
	}
	waiter := o.waiter
	o.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-waiter:
		return true
	case <-timer.C:
		return o.Online()
	case <-ctx.Done():
		return false
	}
}
