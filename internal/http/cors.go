package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMaxAge caches preflight results in the browser.
const corsMaxAge = 12 * time.Hour

// createCORSMiddleware builds the CORS stage for browser clients, or
// returns nil when disabled or misconfigured so the router skips the
// stage entirely.
//
// The refresh flow carries a SameSite=None cookie, which means
// cross-origin requests from the configured frontends must be
// credentialed; wildcards are therefore never used and origins must be
// listed explicitly. The throttling headers (Retry-After, X-RateLimit-*)
// and the correlation id are exposed so browser clients can read them.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled",
		slog.Int("origin_count", len(origins)),
		slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

// parseOrigins splits a comma-separated origin list, dropping empty
// entries and surrounding whitespace.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	parts := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
