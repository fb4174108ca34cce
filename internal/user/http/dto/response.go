// Package dto provides request and response types for user endpoints.
package dto

import (
	"time"

	"github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// UserResponse is the authenticated user's view of their own account.
// BirthDate is a YYYY-MM-DD date; it is omitted for accounts without one.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	BirthDate   string    `json:"birth_date,omitempty"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse maps a user entity to the self view.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       user.Roles,
		CreatedAt:   user.CreatedAt,
	}
	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format("2006-01-02")
	}
	return resp
}

// AdminUserResponse is the administrative view of an account, including the
// enabled flag.
type AdminUserResponse struct {
	UserResponse
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAdminUserResponse maps a user entity to the administrative view.
func NewAdminUserResponse(user *domain.User) AdminUserResponse {
	return AdminUserResponse{
		UserResponse: NewUserResponse(user),
		Enabled:      user.Enabled,
		UpdatedAt:    user.UpdatedAt,
	}
}
