package service

import "time"

// SessionTokenService issues opaque session tokens.
type SessionTokenService interface {
	// Generate returns a new random token drawn from a cryptographically strong source.
	Generate() (string, error)

	// HashToken derives the value stored in place of the raw token.
	HashToken(token string) string
}

// ConfirmationTokenService issues and verifies email confirmation tokens.
type ConfirmationTokenService interface {
	// Issue creates a token bound to email and returns it with its expiry.
	Issue(email string) (token string, expiresAt time.Time, err error)

	// Verify checks that token was issued for email and is still valid.
	// It returns domainerrors.ErrInvalidLink or domainerrors.ErrConfirmationExpired.
	Verify(email, token string) error
}
