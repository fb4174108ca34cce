package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zuxercoding99/social-media-api/internal/httputil"
)

// DecisionRecorder records admission outcomes for observability.
type DecisionRecorder interface {
	RecordAdmission(ctx context.Context, class string, allowed bool)
}

// Middleware enforces admission control as the first stage of the request
// pipeline. Exempt paths pass straight through; everything else consumes one
// token from the bucket for its route class + client IP.
//
// MUST be registered before the error boundary and authentication stages:
// a throttled request never pays their cost.
//
// Rejections short-circuit with 429, `Retry-After`, and a problem body; the
// downstream chain is never invoked. A failure inside the limiter itself is
// caught here and resolved by the configured fail-open/fail-closed policy
// rather than crashing the request.
func Middleware(
	store *Store,
	classifier *Classifier,
	failOpen bool,
	recorder DecisionRecorder,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if classifier.IsExempt(path) {
			c.Next()
			return
		}

		class := classifier.Classify(path)
		clientIP := c.ClientIP()

		decision, err := checkAdmission(store, class, clientIP)
		if err != nil {
			logger.Error("admission check failed",
				slog.String("route_class", class),
				slog.String("client_ip", clientIP),
				slog.Any("error", err))

			if failOpen {
				c.Next()
				return
			}

			httputil.WriteProblem(
				c,
				http.StatusTooManyRequests,
				"Too Many Requests",
				"Request admission is temporarily unavailable. Try again later.",
			)
			return
		}

		if recorder != nil {
			recorder.RecordAdmission(c.Request.Context(), class, decision.Allowed)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())

			logger.Warn("rate limit exceeded",
				slog.String("route_class", class),
				slog.String("client_ip", clientIP),
				slog.String("path", path),
				slog.Int("retry_after", retryAfter))

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteProblem(
				c,
				http.StatusTooManyRequests,
				"Too Many Requests",
				"You have exceeded the allowed request rate. Try again later.",
			)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}

// checkAdmission runs one bucket consume with a panic guard so a limiter
// failure degrades to the configured policy instead of reaching the client.
func checkAdmission(store *Store, class, clientIP string) (decision Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("admission panic: %v", r)
		}
	}()
	return store.Allow(class, clientIP), nil
}
