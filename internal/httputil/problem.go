// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
)

// Problem represents the structured error body returned to clients.
// Detail never carries internal error messages; those stay in the server logs
// keyed by the correlation id.
type Problem struct {
	Status        int    `json:"status"`
	Title         string `json:"title"`
	Detail        string `json:"detail"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// WriteProblem writes a problem body with the request's correlation id and
// aborts the Gin chain.
func WriteProblem(c *gin.Context, status int, title, detail string) {
	c.AbortWithStatusJSON(status, Problem{
		Status:        status,
		Title:         title,
		Detail:        detail,
		CorrelationID: requestid.Get(c),
	})
}

// HandleError maps domain errors to HTTP status codes and writes a problem body.
// Unauthorized and rate-limited failures always produce the same generic detail
// regardless of the underlying cause, to avoid leaking which check failed.
func HandleError(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var status int
	var title, detail string

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
		detail = "The requested resource was not found."

	case apperrors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		title = "Conflict"
		detail = "A conflict occurred with existing data."

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		title = "Invalid Input"
		detail = err.Error()

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		title = "Unauthorized"
		detail = "Authentication is required."

	case apperrors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		title = "Forbidden"
		detail = "You don't have permission to access this resource."

	case apperrors.Is(err, apperrors.ErrRateLimited):
		status = http.StatusTooManyRequests
		title = "Too Many Requests"
		detail = "You have exceeded the allowed request rate. Try again later."

	default:
		status = http.StatusInternalServerError
		title = "Internal Server Error"
		detail = "An unexpected error occurred."
	}

	// Full error details stay server-side
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.Int("status_code", status),
			slog.String("correlation_id", requestid.Get(c)),
			slog.Any("error", err),
		)
	}

	WriteProblem(c, status, title, detail)
}

// HandleBadRequest writes a 400 Bad Request problem for malformed JSON or parameters.
func HandleBadRequest(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	WriteProblem(c, http.StatusBadRequest, "Bad Request", "The request body could not be parsed.")
}
