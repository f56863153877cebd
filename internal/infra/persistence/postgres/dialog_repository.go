package postgres

import (
	"context"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dialogRepository implements the domain DialogRepository interface.
type dialogRepository struct {
	db *gorm.DB
}

// NewDialogRepository returns a DialogRepository bound to db.
func NewDialogRepository(db *gorm.DB) repository.DialogRepository {
	return &dialogRepository{db: db}
}

// Create persists a new dialog.
func (repo *dialogRepository) Create(ctx context.Context, dialog *entity.Dialog) error {
	dialogM := fromDialogDomain(dialog)

	if err := repo.db.WithContext(ctx).Create(dialogM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("dialog already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create dialog")
	}

	dialog.CreatedAt = dialogM.CreatedAt

	return nil
}

// FindByID retrieves a dialog by ID.
func (repo *dialogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dialog, error) {
	return repo.first(ctx, "id = ?", id)
}

// FindByPair retrieves the dialog between two users regardless of order.
func (repo *dialogRepository) FindByPair(ctx context.Context, firstUserID, secondUserID int64) (*entity.Dialog, error) {
	if firstUserID > secondUserID {
		firstUserID, secondUserID = secondUserID, firstUserID
	}

	return repo.first(ctx, "first_user_id = ? AND second_user_id = ?", firstUserID, secondUserID)
}

func (repo *dialogRepository) first(ctx context.Context, query string, args ...any) (*entity.Dialog, error) {
	var dialogM model.DialogModel
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&dialogM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDialogNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find dialog")
	}

	return toDialogDomain(&dialogM), nil
}

// FindByUserID lists every dialog where userID is a participant.
func (repo *dialogRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Dialog, error) {
	var dialogModels []*model.DialogModel
	if err := repo.db.WithContext(ctx).
		Where("first_user_id = ? OR second_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&dialogModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list dialogs")
	}

	dialogs := make([]*entity.Dialog, 0, len(dialogModels))
	for _, dialogM := range dialogModels {
		dialogs = append(dialogs, toDialogDomain(dialogM))
	}

	return dialogs, nil
}

// CreateMessage persists a message and assigns its ID.
func (repo *dialogRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	messageM := fromMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrDialogNotFound, "failed to create message")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	message.ID = messageM.ID
	message.SentAt = messageM.SentAt

	return nil
}

// LastMessage returns the newest message of a dialog, or nil when the dialog is empty.
func (repo *dialogRepository) LastMessage(ctx context.Context, dialogID uuid.UUID) (*entity.Message, error) {
	var messageModels []*model.MessageModel
	if err := repo.db.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Order("sent_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&messageModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find last message")
	}

	if len(messageModels) == 0 {
		return nil, nil
	}

	return toMessageDomain(messageModels[0]), nil
}

// ListMessages returns up to limit messages sent before the given time, newest first.
func (repo *dialogRepository) ListMessages(ctx context.Context, dialogID uuid.UUID, before time.Time, limit int) ([]*entity.Message, error) {
	query := repo.db.WithContext(ctx).Where("dialog_id = ?", dialogID)
	if !before.IsZero() {
		query = query.Where("sent_at < ?", before)
	}

	var messageModels []*model.MessageModel
	if err := query.Order("sent_at DESC").Order("id DESC").Limit(limit).Find(&messageModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list messages")
	}

	messages := make([]*entity.Message, 0, len(messageModels))
	for _, messageM := range messageModels {
		messages = append(messages, toMessageDomain(messageM))
	}

	return messages, nil
}

// --- Mapper Functions ---

func toDialogDomain(data *model.DialogModel) *entity.Dialog {
	return &entity.Dialog{
		ID:           data.ID,
		FirstUserID:  data.FirstUserID,
		SecondUserID: data.SecondUserID,
		CreatedAt:    data.CreatedAt,
	}
}

func fromDialogDomain(data *entity.Dialog) *model.DialogModel {
	return &model.DialogModel{
		ID:           data.ID,
		FirstUserID:  data.FirstUserID,
		SecondUserID: data.SecondUserID,
		CreatedAt:    data.CreatedAt,
	}
}

func toMessageDomain(data *model.MessageModel) *entity.Message {
	return &entity.Message{
		ID:       data.ID,
		DialogID: data.DialogID,
		SenderID: data.SenderID,
		Text:     data.Text,
		SentAt:   data.SentAt,
	}
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	return &model.MessageModel{
		ID:       data.ID,
		DialogID: data.DialogID,
		SenderID: data.SenderID,
		Text:     data.Text,
		SentAt:   data.SentAt,
	}
}
