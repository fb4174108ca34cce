// Package mocks provides mock implementations for auth HTTP handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// AuthUseCase is a mock implementation of usecase.AuthUseCase.
type AuthUseCase struct {
	mock.Mock
}

func (m *AuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *AuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *AuthUseCase) OAuthLogin(ctx context.Context, idToken string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *AuthUseCase) Refresh(ctx context.Context, plainSecret string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, plainSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *AuthUseCase) Logout(ctx context.Context, plainSecret string) error {
	args := m.Called(ctx, plainSecret)
	return args.Error(0)
}
