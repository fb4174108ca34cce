package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
)

// accessClaims is the JWT payload for an access token. The subject is the
// user ID; roles travel in a custom claim.
type accessClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// accessTokenService implements AccessTokenService using HMAC-SHA256 signed JWTs.
type accessTokenService struct {
	signingKey []byte
	expiration time.Duration
}

// Issue creates a signed HS256 token for the subject. Expiration is relative
// to the current time; all timestamps are UTC.
func (a *accessTokenService) Issue(subject uuid.UUID, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// Verify validates the token signature and expiry and returns the encoded
// principal. Any failure collapses into ErrInvalidCredentials so callers
// cannot distinguish a forged token from an expired one.
func (a *accessTokenService) Verify(tokenString string) (authDomain.Principal, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &accessClaims{}, func(t *jwt.Token) (any, error) {
		return a.signingKey, nil
	})
	if err != nil {
		return authDomain.Anonymous(), authDomain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return authDomain.Anonymous(), authDomain.ErrInvalidCredentials
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authDomain.Anonymous(), authDomain.ErrInvalidCredentials
	}

	return authDomain.Principal{
		Subject: subject,
		Roles:   claims.Roles,
	}, nil
}

// NewAccessTokenService creates an AccessTokenService signing with the given
// key and issuing tokens valid for the given duration.
func NewAccessTokenService(signingKey string, expiration time.Duration) AccessTokenService {
	return &accessTokenService{
		signingKey: []byte(signingKey),
		expiration: expiration,
	}
}
