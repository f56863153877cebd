package repository

import (
	"context"

	"birdy/internal/domain/entity"
	"birdy/internal/errors"
)

// ErrSessionNotFound is returned when no session matches the lookup.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores sessions keyed by the hash of their token.
// Revoked sessions are deleted, never flagged.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves the session owning the token hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// FindByUserID lists every session of a user, newest first.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Session, error)

	// CountByUserID returns the number of sessions a user holds.
	CountByUserID(ctx context.Context, userID int64) (int, error)

	// DeleteByTokenHash removes the session matching both the hash and the owner.
	DeleteByTokenHash(ctx context.Context, userID int64, tokenHash string) error

	// DeleteByUserID removes every session of a user.
	DeleteByUserID(ctx context.Context, userID int64) error
}
