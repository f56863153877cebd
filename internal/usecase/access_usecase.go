// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"birdy/internal/domain/entity"
)

// AccessUsecase gates every authenticated operation.
type AccessUsecase interface {
	// ValidateToken resolves a raw session token to its owner.
	ValidateToken(ctx context.Context, token string) (int64, error)

	// CheckChatAccess fails with ErrInsufficientRights unless userID holds at
	// least the required rank in the chat.
	CheckChatAccess(ctx context.Context, userID, chatID int64, required entity.ChatStatus) error

	// ResolveFriendship reports whether the two users are accepted friends.
	ResolveFriendship(ctx context.Context, ownerUserID, targetUserID int64) (bool, error)
}
