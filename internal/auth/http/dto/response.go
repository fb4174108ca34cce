package dto

import (
	"time"

	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// RegisterResponse is returned after successful account registration.
// BirthDate is a YYYY-MM-DD date; it is omitted for accounts without one.
type RegisterResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	BirthDate   string    `json:"birth_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRegisterResponse maps a user entity to the registration response.
// The password hash and role list never leave the server.
func NewRegisterResponse(user *userDomain.User) RegisterResponse {
	resp := RegisterResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format("2006-01-02")
	}
	return resp
}

// TokenResponse is returned after a successful login or refresh.
// The refresh secret travels separately in an HttpOnly cookie.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
