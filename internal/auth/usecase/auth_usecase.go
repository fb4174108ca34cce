// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	authService "github.com/zuxercoding99/social-media-api/internal/auth/service"
	"github.com/zuxercoding99/social-media-api/internal/config"
	"github.com/zuxercoding99/social-media-api/internal/database"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
	appValidation "github.com/zuxercoding99/social-media-api/internal/validation"
)

// birthDateLayout is the wire format for registration birth dates.
const birthDateLayout = "2006-01-02"

// minRegistrationAge is the minimum account age in years.
const minRegistrationAge = 13

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	txManager       database.TxManager
	userRepo        UserRepository
	refreshRepo     RefreshCredentialRepository
	tokenService    authService.AccessTokenService
	secretService   authService.RefreshSecretService
	idTokenVerifier authService.IDTokenVerifier
	passwordHasher  *pwdhash.PasswordHasher
}

// validateRegisterInput validates the registration input.
func (a *authUseCase) validateRegisterInput(input *authDomain.RegisterInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
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
		validation.Field(&input.BirthDate,
			validation.Required.Error("birth date is required"),
			appValidation.MinAge{Years: minRegistrationAge},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new account with the default USER role.
func (a *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	if err := a.validateRegisterInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	birthDate, err := time.Parse(birthDateLayout, input.BirthDate)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     strings.TrimSpace(strings.ToLower(input.Username)),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: passwordHash,
		BirthDate:    &birthDate,
		Roles:        []string{authDomain.RoleUser},
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates by email and password and issues a new token pair.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown emails and wrong
//     passwords to prevent account enumeration
//   - Returns ErrUserDisabled if the account exists but is disabled
//   - The plain refresh secret is only returned once; the database holds
//     its SHA-256 hash
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	user, err := a.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Enabled {
		return nil, authDomain.ErrUserDisabled
	}

	ok, err := a.passwordHasher.Verify([]byte(input.Password), user.PasswordHash)
	if err != nil || !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, user)
}

// issueTokens mints an access token and replaces the user's refresh
// credential. Every successful authentication path ends here, so password
// and federated logins produce the same token pair.
func (a *authUseCase) issueTokens(ctx context.Context, user *userDomain.User) (*authDomain.TokenPair, error) {
	accessToken, err := a.tokenService.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, err
	}

	plainSecret, secretHash, err := a.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential := &authDomain.RefreshCredential{
		ID:         uuid.Must(uuid.NewV7()),
		UserID:     user.ID,
		SecretHash: secretHash,
		ExpiresAt:  now.Add(a.config.RefreshTokenExpiration),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Replaces any previous credential: one active session per account
	if err := a.refreshRepo.Upsert(ctx, credential); err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:        accessToken,
		PlainRefreshSecret: plainSecret,
	}, nil
}

// OAuthLogin authenticates with an external identity provider's ID token.
// A verified identity whose email has no account yet is provisioned on the
// spot; afterwards the flow converges with Login.
//
// Security Notes:
//   - Any token that fails verification maps to ErrInvalidCredentials
//   - Unverified provider emails are rejected: the email is the account
//     key, so an attacker must not log in with an address they merely claim
//   - Returns ErrUserDisabled if the matched account is disabled
func (a *authUseCase) OAuthLogin(ctx context.Context, idToken string) (*authDomain.TokenPair, error) {
	identity, err := a.idTokenVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !identity.EmailVerified {
		return nil, authDomain.ErrInvalidCredentials
	}

	email := strings.TrimSpace(strings.ToLower(identity.Email))
	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, err
		}
		user, err = a.createOAuthUser(ctx, email, identity.Name)
		if err != nil {
			return nil, err
		}
	}

	if !user.Enabled {
		return nil, authDomain.ErrUserDisabled
	}

	return a.issueTokens(ctx, user)
}

// createOAuthUser provisions an account for a verified external identity.
// The account has no usable password: its hash is derived from a random
// secret that is thrown away, so only the federated flow can sign in.
func (a *authUseCase) createOAuthUser(ctx context.Context, email, name string) (*userDomain.User, error) {
	plainSecret, _, err := a.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordHasher.Hash([]byte(plainSecret))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = email
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     oauthUsername(email),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Roles:        []string{authDomain.RoleUser},
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// oauthUsername derives a unique username from the email's local part,
// restricted to the username charset and suffixed with random material to
// avoid collisions between providers.
func oauthUsername(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(email), "@")

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}

	base := b.String()
	if len(base) > 20 {
		base = base[:20]
	}
	if base == "" {
		base = "user"
	}

	suffix := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")[:8]
	return base + "_" + suffix
}

// Refresh rotates the refresh credential and issues a new token pair.
//
// The lookup, expiry check, and rotation happen inside one transaction with
// the credential row locked, so two concurrent refreshes with the same secret
// cannot both succeed: the loser finds the hash already rotated and fails
// with ErrInvalidCredentials.
func (a *authUseCase) Refresh(ctx context.Context, plainSecret string) (*authDomain.TokenPair, error) {
	secretHash := a.secretService.HashSecret(plainSecret)

	var tokenPair *authDomain.TokenPair
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		credential, err := a.refreshRepo.GetBySecretHashForUpdate(ctx, secretHash)
		if err != nil {
			if errors.Is(err, authDomain.ErrRefreshNotFound) {
				return authDomain.ErrInvalidCredentials
			}
			return err
		}

		now := time.Now().UTC()
		if credential.IsExpired(now) {
			// Purge the dead credential; the client has to log in again
			if err := a.refreshRepo.Delete(ctx, credential.ID); err != nil {
				return err
			}
			return authDomain.ErrInvalidCredentials
		}

		user, err := a.userRepo.GetByID(ctx, credential.UserID)
		if err != nil {
			if errors.Is(err, userDomain.ErrUserNotFound) {
				return authDomain.ErrInvalidCredentials
			}
			return err
		}

		if !user.Enabled {
			return authDomain.ErrUserDisabled
		}

		newPlainSecret, newSecretHash, err := a.secretService.GenerateSecret()
		if err != nil {
			return err
		}

		// Rotation makes the presented secret single-use
		expiresAt := now.Add(a.config.RefreshTokenExpiration)
		if err := a.refreshRepo.UpdateSecret(ctx, credential.ID, newSecretHash, expiresAt); err != nil {
			return err
		}

		accessToken, err := a.tokenService.Issue(user.ID, user.Roles)
		if err != nil {
			return err
		}

		tokenPair = &authDomain.TokenPair{
			AccessToken:        accessToken,
			PlainRefreshSecret: newPlainSecret,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout invalidates the refresh credential matching the presented secret.
func (a *authUseCase) Logout(ctx context.Context, plainSecret string) error {
	secretHash := a.secretService.HashSecret(plainSecret)
	return a.refreshRepo.DeleteBySecretHash(ctx, secretHash)
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	config *config.Config,
	txManager database.TxManager,
	userRepo UserRepository,
	refreshRepo RefreshCredentialRepository,
	tokenService authService.AccessTokenService,
	secretService authService.RefreshSecretService,
	idTokenVerifier authService.IDTokenVerifier,
) (AuthUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &authUseCase{
		config:          config,
		txManager:       txManager,
		userRepo:        userRepo,
		refreshRepo:     refreshRepo,
		tokenService:    tokenService,
		secretService:   secretService,
		idTokenVerifier: idTokenVerifier,
		passwordHasher:  hasher,
	}, nil
}
