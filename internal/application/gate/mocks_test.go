package gate

import (
	"context"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"guestgate/internal/infrastructure/backend"
	"guestgate/internal/shared/clock"
	"guestgate/internal/shared/logger"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) IssueTrialToken(ctx context.Context, info backend.DeviceInfo) (string, error) {
	args := m.Called(ctx, info)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) GetTrialConfig(ctx context.Context) (*backend.ConfigDocument, error) {
	args := m.Called(ctx)
	if doc := args.Get(0); doc != nil {
		return doc.(*backend.ConfigDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) PutTrialConfig(ctx context.Context, doc *backend.ConfigDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *mockAPI) GetTrialUsage(ctx context.Context, deviceToken string) (*backend.UsageDocument, error) {
	args := m.Called(ctx, deviceToken)
	if doc := args.Get(0); doc != nil {
		return doc.(*backend.UsageDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) GuestChat(ctx context.Context, deviceToken, message string) (string, error) {
	args := m.Called(ctx, deviceToken, message)
	return args.String(0), args.Error(1)
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

// testNow is noon UTC so local/UTC day keys agree in assertions.
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testClock() *clock.Fake {
	return clock.NewFake(testNow)
}
