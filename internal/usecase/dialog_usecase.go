package usecase

import (
	"context"
	"time"

	"birdy/internal/domain/entity"

	"github.com/google/uuid"
)

// Paging bounds for GetMessages.
const (
	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 100
)

// GetMessagesInput pages backwards through a dialog.
type GetMessagesInput struct {
	Limit  int
	Before time.Time
}

// DialogUsecase manages 1:1 dialogs between friends.
type DialogUsecase interface {
	StartDialog(ctx context.Context, userID int64, friendTag string) (*entity.Dialog, error)
	GetDialogs(ctx context.Context, userID int64) ([]*entity.DialogInfo, error)
	SendMessage(ctx context.Context, userID int64, dialogID uuid.UUID, text string) (*entity.Message, error)
	GetMessages(ctx context.Context, userID int64, dialogID uuid.UUID, input GetMessagesInput) ([]*entity.Message, error)
}
