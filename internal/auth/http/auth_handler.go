package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/auth/http/dto"
	authUseCase "github.com/zuxercoding99/social-media-api/internal/auth/usecase"
	"github.com/zuxercoding99/social-media-api/internal/config"
	"github.com/zuxercoding99/social-media-api/internal/httputil"
	appValidation "github.com/zuxercoding99/social-media-api/internal/validation"
)

// refreshCookieName is the cookie carrying the plain refresh secret.
const refreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the auth endpoints so the secret is
// never sent with ordinary API requests.
const refreshCookiePath = "/api/v1/auth/"

// AuthHandler handles HTTP requests for registration and the token lifecycle.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	config      *config.Config
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	config *config.Config,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		config:      config,
		logger:      logger,
	}
}

// RegisterHandler creates a new account.
// POST /api/v1/auth/register - No authentication required.
// Returns 201 Created with the public user fields.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.authUseCase.Register(c.Request.Context(), &authDomain.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		BirthDate:   req.BirthDate,
	})
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegisterResponse(user))
}

// LoginHandler authenticates by email and password.
// POST /api/v1/auth/login - No authentication required.
// Returns 200 OK with an access token; the refresh secret is set as an
// HttpOnly cookie scoped to the auth endpoints.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.authUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.PlainRefreshSecret)
	c.JSON(http.StatusOK, h.tokenResponse(pair))
}

// OAuthGoogleHandler authenticates with a Google ID token.
// POST /api/v1/auth/oauth/google - No authentication required.
// First-time sign-ins provision an account from the verified identity; the
// response is the same token pair a password login produces.
func (h *AuthHandler) OAuthGoogleHandler(c *gin.Context) {
	var req dto.OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.authUseCase.OAuthLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.PlainRefreshSecret)
	c.JSON(http.StatusOK, h.tokenResponse(pair))
}

// RefreshHandler exchanges the refresh cookie for a new token pair.
// POST /api/v1/auth/refresh - Authenticated by the refresh cookie.
// The stored secret rotates on every successful call; the previous cookie
// value stops working immediately.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	secret, err := c.Cookie(refreshCookieName)
	if err != nil || secret == "" {
		httputil.HandleError(c, authDomain.ErrInvalidCredentials, h.logger)
		return
	}

	pair, err := h.authUseCase.Refresh(c.Request.Context(), secret)
	if err != nil {
		// A rejected refresh also clears the dead cookie
		h.clearRefreshCookie(c)
		httputil.HandleError(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.PlainRefreshSecret)
	c.JSON(http.StatusOK, h.tokenResponse(pair))
}

// LogoutHandler invalidates the refresh credential and clears the cookie.
// POST /api/v1/auth/logout - Returns 204 No Content, even when no credential
// matched: logout is idempotent.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if secret, err := c.Cookie(refreshCookieName); err == nil && secret != "" {
		if err := h.authUseCase.Logout(c.Request.Context(), secret); err != nil {
			httputil.HandleError(c, err, h.logger)
			return
		}
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// tokenResponse builds the response body for a token pair.
func (h *AuthHandler) tokenResponse(pair *authDomain.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.config.AccessTokenExpiration.Seconds()),
	}
}

// setRefreshCookie attaches the refresh secret as an HttpOnly, Secure cookie.
// SameSite=None allows cross-origin frontends to send it to the auth endpoints.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, secret string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(
		refreshCookieName,
		secret,
		int(h.config.RefreshTokenExpiration.Seconds()),
		refreshCookiePath,
		"",
		true,
		true,
	)
}

// clearRefreshCookie expires the refresh cookie on the client.
func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", true, true)
}
