package usecase

import (
	"context"
	"time"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/metrics"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for account registration operations.
func (a *authUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "register", status)
	a.metrics.RecordDuration(ctx, "auth", "register", time.Since(start), status)

	return user, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return pair, err
}

// OAuthLogin records metrics for federated login operations.
func (a *authUseCaseWithMetrics) OAuthLogin(
	ctx context.Context,
	idToken string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.OAuthLogin(ctx, idToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "oauth_login", status)
	a.metrics.RecordDuration(ctx, "auth", "oauth_login", time.Since(start), status)

	return pair, err
}

// Refresh records metrics for refresh rotation operations.
func (a *authUseCaseWithMetrics) Refresh(
	ctx context.Context,
	plainSecret string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Refresh(ctx, plainSecret)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "refresh", status)
	a.metrics.RecordDuration(ctx, "auth", "refresh", time.Since(start), status)

	return pair, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, plainSecret string) error {
	start := time.Now()
	err := a.next.Logout(ctx, plainSecret)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "logout", status)
	a.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), status)

	return err
}
