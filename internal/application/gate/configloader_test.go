package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"guestgate/internal/domain/trial"
	"guestgate/internal/infrastructure/network"
	"guestgate/internal/infrastructure/retry"
	sharederrors "guestgate/internal/shared/errors"
)

func newConfigLoader(api API, online bool) *ConfigLoader {
	observer := network.NewStaticObserver(online)
	guard := retry.NewGuard(observer, discardLogger())
	return NewConfigLoader(api, observer, guard, 1, time.Millisecond, discardLogger())
}

func TestConfigLoader_OfflineUsesDefaultWithoutFetching(t *testing.T) {
	api := new(mockAPI)
	loader := newConfigLoader(api, false)

	cfg := loader.Load(context.Background())

	assert.Equal(t, trial.DefaultConfig(), cfg)
	api.AssertNotCalled(t, "GetTrialConfig", mock.Anything)
}

func TestConfigLoader_FetchFailureFallsBackToDefault(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(nil, errors.New("backend down"))

	loader := newConfigLoader(api, true)
	cfg := loader.Load(context.Background())

	assert.Equal(t, trial.DefaultConfig(), cfg)
	// maxRetries=1: one initial attempt plus one retry.
	api.AssertNumberOfCalls(t, "GetTrialConfig", 2)
}

func TestConfigLoader_MergesRemoteOverDefault(t *testing.T) {
	chat := 3
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(&trial.ConfigPatch{ChatMessagesPerDay: &chat}, nil)

	loader := newConfigLoader(api, true)
	cfg := loader.Load(context.Background())

	assert.Equal(t, 3, cfg.ChatMessagesPerDay)
	assert.Equal(t, trial.DefaultConfig().CallsPerDay, cfg.CallsPerDay)
	assert.True(t, cfg.Enabled)
}

func TestConfigLoader_CachesForSession(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(&trial.ConfigPatch{}, nil).Once()

	loader := newConfigLoader(api, true)
	first := loader.Load(context.Background())
	second := loader.Load(context.Background())

	assert.Equal(t, first, second)
	api.AssertNumberOfCalls(t, "GetTrialConfig", 1)
}

func TestConfigLoader_InvalidateForcesRefetch(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(&trial.ConfigPatch{}, nil)

	loader := newConfigLoader(api, true)
	loader.Load(context.Background())
	loader.Invalidate()
	loader.Load(context.Background())

	api.AssertNumberOfCalls(t, "GetTrialConfig", 2)
}

func TestSeedDefault_SkipsWhenConfigExists(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(&trial.ConfigPatch{}, nil)

	loader := newConfigLoader(api, true)
	err := loader.SeedDefault(context.Background())

	assert.NoError(t, err)
	api.AssertNotCalled(t, "PutTrialConfig", mock.Anything, mock.Anything)
}

func TestSeedDefault_WritesWhenMissing(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(nil, sharederrors.NewNotFoundError("missing", "trial/config"))
	api.On("PutTrialConfig", mock.Anything, mock.MatchedBy(func(doc *trial.ConfigPatch) bool {
		return doc.Enabled != nil && *doc.Enabled &&
			doc.ChatMessagesPerDay != nil && *doc.ChatMessagesPerDay == trial.DefaultConfig().ChatMessagesPerDay
	})).Return(nil)

	loader := newConfigLoader(api, true)
	err := loader.SeedDefault(context.Background())

	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestSeedDefault_PropagatesOtherErrors(t *testing.T) {
	api := new(mockAPI)
	api.On("GetTrialConfig", mock.Anything).Return(nil, errors.New("backend down"))

	loader := newConfigLoader(api, true)
	err := loader.SeedDefault(context.Background())

	assert.Error(t, err)
	api.AssertNotCalled(t, "PutTrialConfig", mock.Anything, mock.Anything)
}
