// Package dto provides request and response types for authentication endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/zuxercoding99/social-media-api/internal/validation"
)

// RegisterRequest is the request body for account registration.
// BirthDate is a YYYY-MM-DD date.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	BirthDate   string `json:"birth_date"`
}

// Validate validates the registration request. Field-level rules live in the
// use case; this catches structurally empty requests early.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.DisplayName, validation.Required.Error("display name is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
		validation.Field(&r.BirthDate, validation.Required.Error("birth date is required")),
	)
}

// OAuthLoginRequest is the request body for federated sign-in with an
// identity provider's ID token.
type OAuthLoginRequest struct {
	IDToken string `json:"id_token"`
}

// Validate validates the OAuth login request.
func (r OAuthLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDToken, validation.Required.Error("id token is required")),
	)
}

// LoginRequest is the request body for password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}
