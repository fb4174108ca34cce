package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zuxercoding99/social-media-api/internal/metrics"
	"github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a user UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for account creation operations.
func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "create", status)
	u.metrics.RecordDuration(ctx, "user", "create", time.Since(start), status)

	return user, err
}

// GetByID records metrics for account retrieval operations.
func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "get", status)
	u.metrics.RecordDuration(ctx, "user", "get", time.Since(start), status)

	return user, err
}

// SetEnabled records metrics for enable/disable operations.
func (u *userUseCaseWithMetrics) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	start := time.Now()
	err := u.next.SetEnabled(ctx, id, enabled)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "set_enabled", status)
	u.metrics.RecordDuration(ctx, "user", "set_enabled", time.Since(start), status)

	return err
}
