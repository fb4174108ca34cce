// Package mocks provides mock implementations for user HTTP handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/zuxercoding99/social-media-api/internal/user/domain"
	"github.com/zuxercoding99/social-media-api/internal/user/usecase"
)

// UserUseCase is a mock implementation of usecase.UseCase.
type UserUseCase struct {
	mock.Mock
}

func (m *UserUseCase) Create(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}
