package retry

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guestgate/internal/infrastructure/network"
	"guestgate/internal/shared/logger"
)

func testGuard(online bool) (*Guard, *network.StaticObserver) {
	observer := network.NewStaticObserver(online)
	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
	return NewGuard(observer, log), observer
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	g, _ := testGuard(true)

	calls := 0
	err := g.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	}, 3, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_InvokesExactlyMaxRetriesPlusOneTimes(t *testing.T) {
	g, _ := testGuard(true)

	opErr := errors.New("backend down")
	calls := 0
	err := g.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return opErr
	}, 2, time.Millisecond)

	assert.ErrorIs(t, err, opErr)
	assert.Equal(t, 3, calls)
}

func TestDo_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	g, _ := testGuard(true)

	calls := 0
	err := g.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("nope")
	}, 0, time.Millisecond)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterTransientFailure(t *testing.T) {
	g, _ := testGuard(true)

	calls := 0
	err := g.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, 5, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_WaitsForConnectivityWhenOffline(t *testing.T) {
	g, observer := testGuard(false)

	calls := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		observer.SetOnline(true)
	}()

	err := g.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("offline")
		}
		return nil
	}, 2, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_ContextCancelStopsRetrying(t *testing.T) {
	g, _ := testGuard(true)

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := g.Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	}, 10, 50*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestValue_ReturnsResult(t *testing.T) {
	g, _ := testGuard(true)

	calls := 0
	got, err := Value(context.Background(), g, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "hello", nil
	}, 2, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 2, calls)
}

func TestValue_PropagatesFinalError(t *testing.T) {
	g, _ := testGuard(true)

	opErr := errors.New("persistent")
	got, err := Value(context.Background(), g, func(ctx context.Context) (int, error) {
		return 0, opErr
	}, 1, time.Millisecond)

	assert.ErrorIs(t, err, opErr)
	assert.Zero(t, got)
}
