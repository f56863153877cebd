// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"birdy/internal/domain/entity"
	"birdy/internal/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByIDs retrieves every user whose ID is listed. Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUniqueTag retrieves a single user by their unique tag.
	FindByUniqueTag(ctx context.Context, tag string) (*entity.User, error)

	// Create persists a new user. Unique constraint violations surface as
	// domainerrors.ErrDuplicateTag or domainerrors.ErrDuplicateAccount.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user.
	Update(ctx context.Context, user *entity.User) error
}
