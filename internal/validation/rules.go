// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// usernameRegex allows lowercase letters, digits, dots and underscores
	usernameRegex = regexp.MustCompile(`^[a-z0-9._]{3,30}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password meets minimum security requirements
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}

	checks := []struct {
		required bool
		contains func(rune) bool
		code     string
		message  string
	}{
		{p.RequireUpper, unicode.IsUpper, "validation_password_uppercase",
			"password must contain at least one uppercase letter"},
		{p.RequireLower, unicode.IsLower, "validation_password_lowercase",
			"password must contain at least one lowercase letter"},
		{p.RequireNumber, unicode.IsNumber, "validation_password_number",
			"password must contain at least one number"},
		{p.RequireSpecial, isSpecialChar, "validation_password_special",
			"password must contain at least one special character"},
	}

	for _, check := range checks {
		if check.required && !strings.ContainsFunc(s, check.contains) {
			return validation.NewError(check.code, check.message)
		}
	}

	return nil
}

// MinAge validates that a birth date corresponds to a person at least Years old.
type MinAge struct {
	Years int
}

// Validate checks the birth date against the minimum age requirement.
func (m MinAge) Validate(value interface{}) error {
	var birthDate time.Time
	switch v := value.(type) {
	case time.Time:
		birthDate = v
	case string:
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return validation.NewError("validation_birth_date_format", "must be a date in YYYY-MM-DD format")
		}
		birthDate = parsed
	default:
		return validation.NewError("validation_birth_date_type", "must be a date")
	}

	if birthDate.After(time.Now().AddDate(-m.Years, 0, 0)) {
		return validation.NewError(
			"validation_min_age",
			fmt.Sprintf("must be at least %d years old", m.Years),
		)
	}

	return nil
}

func isSpecialChar(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// Username validates the username charset and length (lowercase letters,
// digits, dots, underscores; 3-30 characters).
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		return usernameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_username_format",
		"must be 3-30 lowercase letters, numbers, dots or underscores",
	),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
