package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"birdy/config"
	"birdy/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultSessionTokenBytes = 32

type randomTokenService struct {
	size int
}

// NewSessionTokenService returns a SessionTokenService backed by crypto/rand.
func NewSessionTokenService(cfg *config.Config) service.SessionTokenService {
	size := defaultSessionTokenBytes
	if cfg != nil && cfg.Auth != nil && cfg.Auth.SessionTokenBytes > 0 {
		size = cfg.Auth.SessionTokenBytes
	}

	return &randomTokenService{size: size}
}

// Generate returns a base64url encoded token of the configured size.
func (s *randomTokenService) Generate() (string, error) {
	buf := make([]byte, s.size)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex encoded SHA-256 of the token.
func (s *randomTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
