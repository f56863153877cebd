package repository

import (
	"context"

	"birdy/internal/domain/entity"
	"birdy/internal/errors"
)

// Domain-specific errors for chat persistence.
var (
	ErrChatNotFound       = errors.New("chat not found")
	ErrMembershipNotFound = errors.New("chat membership not found")
)

// ChatRepository stores chats and their memberships.
type ChatRepository interface {
	// CreateChat persists a new chat and assigns its ID.
	CreateChat(ctx context.Context, chat *entity.Chat) error

	// FindChat retrieves a chat by ID.
	FindChat(ctx context.Context, chatID int64) (*entity.Chat, error)

	// FindMembership retrieves the membership of userID in chatID.
	FindMembership(ctx context.Context, chatID, userID int64) (*entity.ChatMembership, error)

	// ListMemberships lists every membership of a chat ordered by rank, highest first.
	ListMemberships(ctx context.Context, chatID int64) ([]*entity.ChatMembership, error)

	// CreateMembership inserts a membership.
	CreateMembership(ctx context.Context, membership *entity.ChatMembership) error

	// UpdateMembership changes the rank of an existing membership.
	UpdateMembership(ctx context.Context, membership *entity.ChatMembership) error
}
