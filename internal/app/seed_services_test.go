//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

func TestSeedService_Seed_CreatesMissingEntries(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
		{Key: "booking_max_per_day", Value: "20", Category: "bookings"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)
	mockRepo.On("Get", mock.Anything, mock.Anything).Return(nil, seeds.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Times(2)

	result, err := service.Seed(context.Background(), entries, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Total())
	require.Len(t, result.Actions, 2)
	assert.Equal(t, seeds.ActionCreated, result.Actions[0].Action)
	mockRepo.AssertExpectations(t)
}

func TestSeedService_Seed_SkipsExistingWithoutOverwrite(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)
	mockRepo.On("Get", mock.Anything, "payment_provider").
		Return(&seeds.Entry{Key: "payment_provider", Value: "square", Category: "payments"}, nil)

	result, err := service.Seed(context.Background(), entries, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Updated)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSeedService_Seed_OverwriteUpdatesChangedOnly(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
		{Key: "payment_mode", Value: "test", Category: "payments"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)
	mockRepo.On("Get", mock.Anything, "payment_provider").
		Return(&seeds.Entry{Key: "payment_provider", Value: "square", Category: "payments"}, nil)
	mockRepo.On("Get", mock.Anything, "payment_mode").
		Return(&seeds.Entry{Key: "payment_mode", Value: "test", Category: "payments"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *seeds.Entry) bool {
		return e.Key == "payment_provider" && e.Value == "stripe"
	})).Return(nil)

	result, err := service.Seed(context.Background(), entries, true)
	require.NoError(t, err)

	// The identical entry is skipped even with overwrite set.
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	mockRepo.AssertExpectations(t)
}

func TestSeedService_Seed_DuplicateKeysLastWins(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "payment_provider", Value: "square", Category: "payments"},
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)
	mockRepo.On("Get", mock.Anything, "payment_provider").Return(nil, seeds.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *seeds.Entry) bool {
		return e.Value == "stripe"
	})).Return(nil).Once()

	result, err := service.Seed(context.Background(), entries, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total())
	assert.Equal(t, 1, result.Created)
	mockRepo.AssertExpectations(t)
}

func TestSeedService_Seed_CountsFailuresAndContinues(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
		{Key: "booking_max_per_day", Value: "20", Category: "bookings"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)
	mockRepo.On("Get", mock.Anything, mock.Anything).Return(nil, seeds.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *seeds.Entry) bool {
		return e.Key == "payment_provider"
	})).Return(errors.New("connection reset"))
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *seeds.Entry) bool {
		return e.Key == "booking_max_per_day"
	})).Return(nil)

	result, err := service.Seed(context.Background(), entries, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, seeds.ActionFailed, result.Actions[0].Action)
}

func TestSeedService_Seed_InvalidEntryCountsAsFailure(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	entries := []seeds.Entry{
		{Key: "", Value: "stripe", Category: "payments"},
	}

	mockRepo.On("EnsureTable", mock.Anything).Return(nil)

	result, err := service.Seed(context.Background(), entries, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedService_List_RedactsSensitiveValues(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	service, err := NewSeedService(mockRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockRepo.On("List", mock.Anything, "payments").Return([]seeds.Entry{
		{Key: "payment_provider", Value: "stripe", Category: "payments"},
		{Key: "payment_webhook_secret", Value: "whsec_abc123", Category: "payments", Sensitive: true},
	}, nil)

	entries, err := service.List(context.Background(), "payments")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "stripe", entries[0].Value)
	assert.Equal(t, seeds.Redacted, entries[1].Value)
}
