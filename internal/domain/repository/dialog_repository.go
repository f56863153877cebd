package repository

import (
	"context"
	"time"

	"birdy/internal/domain/entity"
	"birdy/internal/errors"

	"github.com/google/uuid"
)

// ErrDialogNotFound is returned when no dialog matches the lookup.
var ErrDialogNotFound = errors.New("dialog not found")

// DialogRepository stores 1:1 dialogs and their messages.
type DialogRepository interface {
	// Create persists a new dialog.
	Create(ctx context.Context, dialog *entity.Dialog) error

	// FindByID retrieves a dialog by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dialog, error)

	// FindByPair retrieves the dialog between two users regardless of order.
	FindByPair(ctx context.Context, firstUserID, secondUserID int64) (*entity.Dialog, error)

	// FindByUserID lists every dialog where userID is a participant.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Dialog, error)

	// CreateMessage persists a message and assigns its ID.
	CreateMessage(ctx context.Context, message *entity.Message) error

	// LastMessage returns the newest message of a dialog, or nil when the dialog is empty.
	LastMessage(ctx context.Context, dialogID uuid.UUID) (*entity.Message, error)

	// ListMessages returns up to limit messages sent strictly before the given
	// time, newest first. A zero before means no upper bound.
	ListMessages(ctx context.Context, dialogID uuid.UUID, before time.Time, limit int) ([]*entity.Message, error)
}
