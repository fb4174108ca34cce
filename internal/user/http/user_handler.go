// Package http provides HTTP handlers for user operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/zuxercoding99/social-media-api/internal/auth/http"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
	"github.com/zuxercoding99/social-media-api/internal/httputil"
	"github.com/zuxercoding99/social-media-api/internal/user/http/dto"
	userUseCase "github.com/zuxercoding99/social-media-api/internal/user/usecase"
	appValidation "github.com/zuxercoding99/social-media-api/internal/validation"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	userUseCase userUseCase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// MeHandler returns the authenticated user's own account.
// GET /api/v1/users/me - Requires authentication.
func (h *UserHandler) MeHandler(c *gin.Context) {
	principal := authHTTP.GetPrincipal(c.Request.Context())
	if principal.IsAnonymous() {
		httputil.HandleError(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), principal.Subject)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// AdminGetUserHandler returns any account by ID, including the enabled flag.
// GET /admin/users/:id - Requires the ADMIN role.
func (h *UserHandler) AdminGetUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminUserResponse(user))
}

// AdminSetEnabledHandler enables or disables an account.
// PATCH /admin/users/:id/enabled - Requires the ADMIN role.
// Disabling blocks future logins and refreshes; outstanding access tokens
// stay valid until they expire.
func (h *UserHandler) AdminSetEnabledHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	var req dto.UpdateEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.SetEnabled(c.Request.Context(), userID, *req.Enabled); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
