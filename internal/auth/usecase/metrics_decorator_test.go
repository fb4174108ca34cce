package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/auth/http/mocks"
	"github.com/zuxercoding99/social-media-api/internal/auth/usecase"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
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

func TestAuthUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Login success", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.LoginInput{Email: "alice@example.com", Password: "Password#123"}
		pair := &authDomain.TokenPair{AccessToken: "token", PlainRefreshSecret: "secret"}

		mockNext.On("Login", ctx, input).Return(pair, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Login(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, pair, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.LoginInput{Email: "alice@example.com", Password: "wrong"}

		mockNext.On("Login", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Login(ctx, input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Register success", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.RegisterInput{
			Username:    "alice",
			Email:       "alice@example.com",
			DisplayName: "Alice",
			Password:    "Password#123",
			BirthDate:   "2000-01-15",
		}
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

		mockNext.On("Register", ctx, input).Return(user, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "register", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "register", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Register(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("OAuthLogin success", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		pair := &authDomain.TokenPair{AccessToken: "token", PlainRefreshSecret: "secret"}

		mockNext.On("OAuthLogin", ctx, "id-token").Return(pair, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "oauth_login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "oauth_login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.OAuthLogin(ctx, "id-token")
		assert.NoError(t, err)
		assert.Equal(t, pair, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Refresh success", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		pair := &authDomain.TokenPair{AccessToken: "token", PlainRefreshSecret: "rotated"}

		mockNext.On("Refresh", ctx, "secret").Return(pair, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "refresh", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "refresh", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Refresh(ctx, "secret")
		assert.NoError(t, err)
		assert.Equal(t, pair, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Logout success", func(t *testing.T) {
		mockNext := &mocks.AuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Logout", ctx, "secret").Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "logout", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "logout", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.Logout(ctx, "secret")
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
