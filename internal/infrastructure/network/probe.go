package network

import (
	"context"
	"net/http"
	"sync"
	"time"

	"guestgate/internal/shared/logger"
)

const probeTimeout = 3 * time.Second

// ProbeObserver determines connectivity by issuing HEAD requests against a
// known endpoint, caching the result for a configurable interval. Any HTTP
// response, including an error status, counts as online; only transport
// failures count as offline.
type ProbeObserver struct {
	url        string
	interval   time.Duration
	httpClient *http.Client
	logger     logger.Interface

	mu        sync.Mutex
	online    bool
	checkedAt time.Time
}

// NewProbeObserver creates a ProbeObserver for the given URL. The first
// probe happens lazily on the first Online call.
func NewProbeObserver(url string, interval time.Duration, log logger.Interface) *ProbeObserver {
	return &ProbeObserver{
		url:      url,
		interval: interval,
		httpClient: &http.Client{
			Timeout: probeTimeout,
		},
		logger: log,
	}
}

func (o *ProbeObserver) Online() bool {
	o.mu.Lock()
	fresh := !o.checkedAt.IsZero() && time.Since(o.checkedAt) < o.interval
	online := o.online
	o.mu.Unlock()

	if fresh {
		return online
	}
	return o.probe(context.Background())
}

func (o *ProbeObserver) AwaitOnline(ctx context.Context, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if o.probe(ctx) {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		wait := time.Second
		if wait > remaining {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false
		}
	}
}

func (o *ProbeObserver) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, o.url, nil)
	if err != nil {
		return false
	}

	resp, err := o.httpClient.Do(req)
	online := err == nil
	if online {
		resp.Body.Close()
	} else {
		o.logger.Debugw("connectivity probe failed", "url", o.url, "error", err)
	}

	o.mu.Lock()
	o.online = online
	o.checkedAt = time.Now()
	o.mu.Unlock()

	return online
}
