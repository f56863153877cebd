package usecase

import (
	"context"

	"birdy/internal/domain/entity"
)

// ChatUsecase manages group chats. Every operation is gated by chat rank.
type ChatUsecase interface {
	CreateChat(ctx context.Context, userID int64, name string) (*entity.Chat, error)
	AddChatMember(ctx context.Context, userID, chatID int64, memberTag string) error
	SetChatMemberStatus(ctx context.Context, userID, chatID int64, memberTag string, status entity.ChatStatus) error
	ListChatMembers(ctx context.Context, userID, chatID int64) ([]*entity.ChatMemberInfo, error)
}
