package service

import (
	"context"

	"google.golang.org/api/idtoken"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
)

// googleIDTokenVerifier validates Google-issued ID tokens against Google's
// published signing keys.
type googleIDTokenVerifier struct {
	clientID string
}

// Verify validates the raw ID token and extracts the asserted identity.
// Any verification failure maps to ErrInvalidCredentials so callers never
// leak provider-specific detail to the client.
func (g *googleIDTokenVerifier) Verify(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	// An empty client ID means federated sign-in was never configured
	if g.clientID == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	payload, err := idtoken.Validate(ctx, idToken, g.clientID)
	if err != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	emailVerified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)

	return &ExternalIdentity{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
	}, nil
}

// NewGoogleIDTokenVerifier creates an IDTokenVerifier that accepts tokens
// issued for the given OAuth client ID.
func NewGoogleIDTokenVerifier(clientID string) IDTokenVerifier {
	return &googleIDTokenVerifier{clientID: clientID}
}
