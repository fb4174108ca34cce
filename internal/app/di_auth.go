package app

import (
	"fmt"

	authHTTP "github.com/zuxercoding99/social-media-api/internal/auth/http"
	authRepository "github.com/zuxercoding99/social-media-api/internal/auth/repository"
	authService "github.com/zuxercoding99/social-media-api/internal/auth/service"
	authUsecase "github.com/zuxercoding99/social-media-api/internal/auth/usecase"
)

// AccessTokenService returns the access token service.
func (c *Container) AccessTokenService() authService.AccessTokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewAccessTokenService(
			c.config.AccessTokenSigningKey,
			c.config.AccessTokenExpiration,
		)
	})
	return c.tokenService
}

// RefreshSecretService returns the refresh secret service.
func (c *Container) RefreshSecretService() authService.RefreshSecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewRefreshSecretService()
	})
	return c.secretService
}

// RefreshCredentialRepository returns the refresh credential repository based on database driver.
func (c *Container) RefreshCredentialRepository() (authUsecase.RefreshCredentialRepository, error) {
	var err error
	c.refreshRepoInit.Do(func() {
		c.refreshRepo, err = c.initRefreshCredentialRepository()
		if err != nil {
			c.initErrors["refreshRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refreshRepo"]; exists {
		return nil, storedErr
	}
	return c.refreshRepo, nil
}

// AuthUseCase returns the auth use case.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the auth HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initRefreshCredentialRepository creates the refresh credential repository instance.
func (c *Container) initRefreshCredentialRepository() (authUsecase.RefreshCredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh credential repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLRefreshCredentialRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLRefreshCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUseCase creates the auth use case with all its dependencies,
// wrapped with metrics instrumentation.
func (c *Container) initAuthUseCase() (authUsecase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	refreshRepo, err := c.RefreshCredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh credential repository for auth use case: %w", err)
	}

	baseUseCase, err := authUsecase.NewAuthUseCase(
		c.config,
		txManager,
		userRepo,
		refreshRepo,
		c.AccessTokenService(),
		c.RefreshSecretService(),
		authService.NewGoogleIDTokenVerifier(c.config.GoogleOAuthClientID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	return authUsecase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

// initAuthHandler creates the auth HTTP handler.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	return authHTTP.NewAuthHandler(authUseCase, c.config, c.Logger()), nil
}
