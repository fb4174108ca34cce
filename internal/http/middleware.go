package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/zuxercoding99/social-media-api/internal/auth/http"
	"github.com/zuxercoding99/social-media-api/internal/httputil"
)

// CustomLoggerMiddleware logs each HTTP request after it completes.
// The log line carries the request id so it can be correlated with any
// problem response returned to the client, and the resolved principal
// subject when the request was authenticated.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		}

		if principal := authHTTP.GetPrincipal(c.Request.Context()); !principal.IsAnonymous() {
			attrs = append(attrs, slog.String("subject", principal.Subject.String()))
		}

		logger.Info("http request", attrs...)
	}
}

// RecoveryMiddleware is the pipeline error boundary. A panic anywhere
// downstream is logged with its request context and converted into a
// generic 500 problem response; internal details never reach the client.
// The log line records who was making the request ("anonymous" when the
// token never resolved) and a masked Authorization header, never the raw
// bearer material.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				subject := "anonymous"
				if principal := authHTTP.GetPrincipal(c.Request.Context()); !principal.IsAnonymous() {
					subject = principal.Subject.String()
				}

				logger.Error("panic recovered",
					slog.Any("error", r),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("client_ip", c.ClientIP()),
					slog.String("request_id", requestid.Get(c)),
					slog.String("subject", subject),
					slog.String("authorization", maskAuthorization(c.GetHeader("Authorization"))),
				)

				httputil.WriteProblem(
					c,
					http.StatusInternalServerError,
					"Internal Server Error",
					"An unexpected error occurred. Try again later.",
				)
			}
		}()

		c.Next()
	}
}

// maskedCredentialPrefix is how much of the credential survives masking,
// enough to tell token families apart in a log line.
const maskedCredentialPrefix = 6

// maskAuthorization reduces an Authorization header to its scheme and a
// short credential prefix. The raw bearer material never reaches a log.
func maskAuthorization(header string) string {
	if header == "" {
		return "none"
	}

	scheme, credential, found := strings.Cut(header, " ")
	if !found {
		scheme, credential = "", header
	}

	masked := "***"
	if len(credential) > maskedCredentialPrefix {
		masked = credential[:maskedCredentialPrefix] + "***"
	}
	if scheme == "" {
		return masked
	}
	return scheme + " " + masked
}
