package domain

// RegisterInput contains the input data for user registration.
// BirthDate uses the YYYY-MM-DD wire format; accounts must meet the
// minimum age requirement.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	BirthDate   string `json:"birth_date"`
}

// LoginInput contains the credentials for password authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the output of a successful login or refresh: a short-lived
// signed access token plus the plain refresh secret. The plain secret is
// returned exactly once; only its hash is persisted.
type TokenPair struct {
	AccessToken        string
	PlainRefreshSecret string
}
