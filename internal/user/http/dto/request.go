package dto

import (
	validation "github.com/jellydator/validation"
)

// UpdateEnabledRequest toggles an account's enabled flag.
// A pointer distinguishes an explicit false from an absent field.
type UpdateEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate validates the request.
func (r UpdateEnabledRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Enabled, validation.NotNil.Error("enabled is required")),
	)
}
