// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
	"github.com/zuxercoding99/social-media-api/internal/user/domain"
	appValidation "github.com/zuxercoding99/social-media-api/internal/validation"
)

// CreateUserInput contains the input data for administrative user creation.
// Unlike self-service registration, the caller picks the role list.
type CreateUserInput struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
	Roles       []string
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	// Create provisions an account with an explicit role list. Used by the
	// CLI to bootstrap administrators.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// SetEnabled enables or disables an account. Disabling blocks future
	// logins and refreshes; already-issued access tokens stay valid until
	// they expire.
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// UserRepository interface defines user repository operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	userRepo       UserRepository
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository) (UseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
	}, nil
}

// validateCreateUserInput validates the creation input.
func (uc *UserUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&input.DisplayName,
			validation.Required.Error("display name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("display name must be between 1 and 100 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&input.Roles,
			validation.Required.Error("at least one role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create provisions an account with an explicit role list.
func (uc *UserUseCase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     strings.TrimSpace(strings.ToLower(input.Username)),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: passwordHash,
		Roles:        input.Roles,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// SetEnabled enables or disables an account.
func (uc *UserUseCase) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	return uc.userRepo.SetEnabled(ctx, id, enabled)
}
