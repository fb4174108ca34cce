package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zuxercoding99/social-media-api/internal/user/domain"
	"github.com/zuxercoding99/social-media-api/internal/user/http/mocks"
	"github.com/zuxercoding99/social-media-api/internal/user/usecase"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestUserUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID success", func(t *testing.T) {
		mockNext := &mocks.UserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())
		user := &domain.User{ID: userID, Username: "alice"}

		mockNext.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "get", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "get", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetByID error", func(t *testing.T) {
		mockNext := &mocks.UserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())

		mockNext.On("GetByID", ctx, userID).Return(nil, domain.ErrUserNotFound).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "get", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "get", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.GetByID(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("SetEnabled success", func(t *testing.T) {
		mockNext := &mocks.UserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())

		mockNext.On("SetEnabled", ctx, userID, false).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "set_enabled", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "set_enabled", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.SetEnabled(ctx, userID, false)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create success", func(t *testing.T) {
		mockNext := &mocks.UserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		input := usecase.CreateUserInput{
			Username:    "bob",
			Email:       "bob@example.com",
			DisplayName: "Bob",
			Password:    "Password#123",
		}
		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Username: "bob"}

		mockNext.On("Create", ctx, input).Return(user, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "create", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "create", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
