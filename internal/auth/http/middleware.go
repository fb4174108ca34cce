package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	authService "github.com/zuxercoding99/social-media-api/internal/auth/service"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
	"github.com/zuxercoding99/social-media-api/internal/httputil"
)

// AuthenticationMiddleware resolves the request's principal from the Bearer
// token in the Authorization header.
//
// The middleware never rejects a request. A missing header, a malformed
// header, or a token that fails verification all resolve to the anonymous
// principal; route guards decide whether anonymous access is acceptable.
// Verification is stateless: only the token signature and validity window
// are checked, no datastore is consulted.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
func AuthenticationMiddleware(
	tokenService authService.AccessTokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := authDomain.Anonymous()

		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			resolved, err := tokenService.Verify(token)
			if err != nil {
				logger.Debug("token verification failed, continuing as anonymous",
					slog.String("path", c.Request.URL.Path))
			} else {
				principal = resolved
			}
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(header string) string {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) ||
		!strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// RequireAuthenticated rejects anonymous requests with 401.
// Must run after AuthenticationMiddleware.
func RequireAuthenticated(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c.Request.Context())
		if principal.IsAnonymous() {
			logger.Debug("rejected anonymous request",
				slog.String("path", c.Request.URL.Path))
			httputil.HandleError(c, apperrors.ErrUnauthorized, logger)
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose principal lacks the given role.
// Anonymous principals get 401; authenticated principals without the role
// get 403. Must run after AuthenticationMiddleware.
func RequireRole(role string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c.Request.Context())
		if principal.IsAnonymous() {
			httputil.HandleError(c, apperrors.ErrUnauthorized, logger)
			return
		}
		if !principal.HasRole(role) {
			logger.Debug("rejected request lacking role",
				slog.String("subject", principal.Subject.String()),
				slog.String("role", role),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleError(c, apperrors.ErrForbidden, logger)
			return
		}
		c.Next()
	}
}
