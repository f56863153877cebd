package memory

import (
	"context"
	"sort"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/google/uuid"
)

type dialogRepository struct {
	state *state
}

func (r *dialogRepository) Create(ctx context.Context, dialog *entity.Dialog) error {
	if _, err := r.FindByPair(ctx, dialog.FirstUserID, dialog.SecondUserID); err == nil {
		return domainerrors.ErrConflict.WrapMessage("dialog already exists")
	}

	if dialog.ID == uuid.Nil {
		dialog.ID = uuid.New()
	}
	if dialog.CreatedAt.IsZero() {
		dialog.CreatedAt = time.Now()
	}

	cp := *dialog
	r.state.dialogs[dialog.ID] = &cp

	return nil
}

func (r *dialogRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Dialog, error) {
	dialog, ok := r.state.dialogs[id]
	if !ok {
		return nil, repository.ErrDialogNotFound
	}
	cp := *dialog

	return &cp, nil
}

func (r *dialogRepository) FindByPair(_ context.Context, firstUserID, secondUserID int64) (*entity.Dialog, error) {
	for _, dialog := range r.state.dialogs {
		if dialog.HasParticipant(firstUserID) && dialog.Interlocutor(firstUserID) == secondUserID {
			cp := *dialog

			return &cp, nil
		}
	}

	return nil, repository.ErrDialogNotFound
}

func (r *dialogRepository) FindByUserID(_ context.Context, userID int64) ([]*entity.Dialog, error) {
	dialogs := make([]*entity.Dialog, 0)
	for _, dialog := range r.state.dialogs {
		if dialog.HasParticipant(userID) {
			cp := *dialog
			dialogs = append(dialogs, &cp)
		}
	}

	sort.SliceStable(dialogs, func(i, j int) bool {
		return dialogs[i].CreatedAt.After(dialogs[j].CreatedAt)
	})

	return dialogs, nil
}

func (r *dialogRepository) CreateMessage(_ context.Context, message *entity.Message) error {
	if _, ok := r.state.dialogs[message.DialogID]; !ok {
		return repository.ErrDialogNotFound
	}

	r.state.nextMessageID++
	message.ID = r.state.nextMessageID
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}

	cp := *message
	r.state.messages[message.DialogID] = append(r.state.messages[message.DialogID], &cp)

	return nil
}

func (r *dialogRepository) LastMessage(ctx context.Context, dialogID uuid.UUID) (*entity.Message, error) {
	messages, err := r.ListMessages(ctx, dialogID, time.Time{}, 1)
	if err != nil || len(messages) == 0 {
		return nil, err
	}

	return messages[0], nil
}

func (r *dialogRepository) ListMessages(_ context.Context, dialogID uuid.UUID, before time.Time, limit int) ([]*entity.Message, error) {
	stored := r.state.messages[dialogID]

	messages := make([]*entity.Message, 0, len(stored))
	for _, message := range stored {
		if !before.IsZero() && !message.SentAt.Before(before) {
			continue
		}
		cp := *message
		messages = append(messages, &cp)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].SentAt.Equal(messages[j].SentAt) {
			return messages[i].SentAt.After(messages[j].SentAt)
		}

		return messages[i].ID > messages[j].ID
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}
