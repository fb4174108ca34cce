package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/auth/http/mocks"
	"github.com/zuxercoding99/social-media-api/internal/config"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
)

func handlerTestConfig() *config.Config {
	return &config.Config{
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
	}
}

func newHandlerRouter(uc *mocks.AuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(uc, handlerTestConfig(), slog.New(slog.DiscardHandler))

	router := gin.New()
	group := router.Group("/api/v1/auth")
	group.POST("/register", handler.RegisterHandler)
	group.POST("/login", handler.LoginHandler)
	group.POST("/oauth/google", handler.OAuthGoogleHandler)
	group.POST("/refresh", handler.RefreshHandler)
	group.POST("/logout", handler.LogoutHandler)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == refreshCookieName {
			return cookie
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success_Returns201WithPublicFields", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Register", mock.Anything, mock.MatchedBy(func(input *authDomain.RegisterInput) bool {
			return input.Username == "john.doe" &&
				input.Email == "john@example.com" &&
				input.BirthDate == "2000-01-15"
		})).Return(userDomainUser(), nil).Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/register", map[string]string{
			"username":     "john.doe",
			"email":        "john@example.com",
			"display_name": "John Doe",
			"password":     "Password123!",
			"birth_date":   "2000-01-15",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "john.doe")
		assert.Contains(t, w.Body.String(), "2000-01-15")
		assert.NotContains(t, w.Body.String(), "password")
		uc.AssertExpectations(t)
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		router := newHandlerRouter(&mocks.AuthUseCase{})
		w := postJSON(router, "/api/v1/auth/register", map[string]string{
			"username": "john.doe",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router := newHandlerRouter(&mocks.AuthUseCase{})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success_ReturnsTokenAndSetsCookie", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Login", mock.Anything, mock.Anything).
			Return(&authDomain.TokenPair{
				AccessToken:        "signed.access.token",
				PlainRefreshSecret: "plain-refresh-secret",
			}, nil).
			Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "Password123!",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "signed.access.token", body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])
		assert.Equal(t, float64(900), body["expires_in"])

		cookie := refreshCookie(t, w)
		assert.Equal(t, "plain-refresh-secret", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, refreshCookiePath, cookie.Path)
		assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

		// The refresh secret never appears in the response body
		assert.NotContains(t, w.Body.String(), "plain-refresh-secret")
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "WrongPassword!",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_DisabledUser", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrUserDisabled).
			Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOAuthGoogleHandler(t *testing.T) {
	t.Run("Success_ReturnsTokenAndSetsCookie", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("OAuthLogin", mock.Anything, "google-id-token").
			Return(&authDomain.TokenPair{
				AccessToken:        "signed.access.token",
				PlainRefreshSecret: "plain-refresh-secret",
			}, nil).
			Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/oauth/google", map[string]string{
			"id_token": "google-id-token",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "signed.access.token", body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])

		cookie := refreshCookie(t, w)
		assert.Equal(t, "plain-refresh-secret", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		uc.AssertExpectations(t)
	})

	t.Run("Error_MissingIDToken", func(t *testing.T) {
		router := newHandlerRouter(&mocks.AuthUseCase{})
		w := postJSON(router, "/api/v1/auth/oauth/google", map[string]string{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_RejectedToken", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("OAuthLogin", mock.Anything, "forged-token").
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		router := newHandlerRouter(uc)
		w := postJSON(router, "/api/v1/auth/oauth/google", map[string]string{
			"id_token": "forged-token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("Success_RotatesCookie", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Refresh", mock.Anything, "old-secret").
			Return(&authDomain.TokenPair{
				AccessToken:        "new.access.token",
				PlainRefreshSecret: "new-secret",
			}, nil).
			Once()

		router := newHandlerRouter(uc)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "old-secret"})
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "new-secret", refreshCookie(t, w).Value)
		uc.AssertExpectations(t)
	})

	t.Run("Error_MissingCookie", func(t *testing.T) {
		router := newHandlerRouter(&mocks.AuthUseCase{})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_RejectedSecretClearsCookie", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Refresh", mock.Anything, "stolen-or-stale").
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		router := newHandlerRouter(uc)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "stolen-or-stale"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cookie := refreshCookie(t, w)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("Success_DeletesCredentialAndClearsCookie", func(t *testing.T) {
		uc := &mocks.AuthUseCase{}
		uc.On("Logout", mock.Anything, "current-secret").Return(nil).Once()

		router := newHandlerRouter(uc)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "current-secret"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Negative(t, refreshCookie(t, w).MaxAge)
		uc.AssertExpectations(t)
	})

	t.Run("Success_NoCookieIsIdempotent", func(t *testing.T) {
		router := newHandlerRouter(&mocks.AuthUseCase{})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func userDomainUser() *userDomain.User {
	now := time.Now().UTC()
	birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
	return &userDomain.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    "john.doe",
		Email:       "john@example.com",
		DisplayName: "John Doe",
		BirthDate:   &birthDate,
		Roles:       []string{authDomain.RoleUser},
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
