package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
)

// mockRefreshCredentialRepository is a local mock for the refresh credential
// repository, exercised here only through DeleteExpired.
type mockRefreshCredentialRepository struct {
	mock.Mock
}

func (m *mockRefreshCredentialRepository) Upsert(ctx context.Context, credential *authDomain.RefreshCredential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *mockRefreshCredentialRepository) GetBySecretHashForUpdate(
	ctx context.Context,
	secretHash string,
) (*authDomain.RefreshCredential, error) {
	args := m.Called(ctx, secretHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshCredential), args.Error(1)
}

func (m *mockRefreshCredentialRepository) UpdateSecret(
	ctx context.Context,
	id uuid.UUID,
	secretHash string,
	expiresAt time.Time,
) error {
	args := m.Called(ctx, id, secretHash, expiresAt)
	return args.Error(0)
}

func (m *mockRefreshCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshCredentialRepository) DeleteBySecretHash(ctx context.Context, secretHash string) error {
	args := m.Called(ctx, secretHash)
	return args.Error(0)
}

func (m *mockRefreshCredentialRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunCleanExpiredCredentials(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	days := 30

	t.Run("text-output", func(t *testing.T) {
		mockRepo := &mockRefreshCredentialRepository{}
		mockRepo.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(10), nil)

		var out bytes.Buffer
		err := RunCleanExpiredCredentials(ctx, mockRepo, logger, &out, days, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 10 expired credential(s)")
		mockRepo.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockRepo := &mockRefreshCredentialRepository{}
		mockRepo.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(5), nil)

		var out bytes.Buffer
		err := RunCleanExpiredCredentials(ctx, mockRepo, logger, &out, days, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 5`)
		require.Contains(t, out.String(), `"days": 30`)
		mockRepo.AssertExpectations(t)
	})

	t.Run("cutoff-respects-days", func(t *testing.T) {
		mockRepo := &mockRefreshCredentialRepository{}
		mockRepo.On("DeleteExpired", ctx, mock.MatchedBy(func(before time.Time) bool {
			expected := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
			return before.Sub(expected).Abs() < time.Minute
		})).Return(int64(0), nil)

		err := RunCleanExpiredCredentials(ctx, mockRepo, logger, &bytes.Buffer{}, days, "text")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid-days", func(t *testing.T) {
		mockRepo := &mockRefreshCredentialRepository{}
		err := RunCleanExpiredCredentials(ctx, mockRepo, logger, &bytes.Buffer{}, -1, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
	})
}
