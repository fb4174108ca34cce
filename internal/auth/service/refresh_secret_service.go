package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
)

// refreshSecretService implements RefreshSecretService using SHA-256 for
// secret hashing.
type refreshSecretService struct{}

// GenerateSecret creates a new cryptographically secure 32-byte random secret.
// The secret is base64 URL-encoded for easy transmission and storage.
// Returns the plain secret and its SHA-256 hash.
func (r *refreshSecretService) GenerateSecret() (plainSecret string, secretHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	plainSecret = base64.URLEncoding.EncodeToString(randomBytes)
	secretHash = r.HashSecret(plainSecret)

	return plainSecret, secretHash, nil
}

// HashSecret hashes a plain text secret using SHA-256.
// Returns the hash as a hexadecimal string.
func (r *refreshSecretService) HashSecret(plainSecret string) string {
	hash := sha256.Sum256([]byte(plainSecret))
	return hex.EncodeToString(hash[:])
}

// NewRefreshSecretService creates a new RefreshSecretService instance using
// SHA-256 for secret hashing.
func NewRefreshSecretService() RefreshSecretService {
	return &refreshSecretService{}
}
