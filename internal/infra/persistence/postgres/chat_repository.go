package postgres

import (
	"context"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// chatRepository implements the domain ChatRepository interface.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a ChatRepository bound to db.
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// CreateChat persists a new chat and assigns its ID.
func (repo *chatRepository) CreateChat(ctx context.Context, chat *entity.Chat) error {
	chatM := &model.ChatModel{Name: chat.Name, CreatedAt: chat.CreatedAt}

	if err := repo.db.WithContext(ctx).Create(chatM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat")
	}

	chat.ID = chatM.ID
	chat.CreatedAt = chatM.CreatedAt

	return nil
}

// FindChat retrieves a chat by ID.
func (repo *chatRepository) FindChat(ctx context.Context, chatID int64) (*entity.Chat, error) {
	var chatM model.ChatModel
	if err := repo.db.WithContext(ctx).Where("id = ?", chatID).First(&chatM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChatNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find chat")
	}

	return &entity.Chat{ID: chatM.ID, Name: chatM.Name, CreatedAt: chatM.CreatedAt}, nil
}

// FindMembership retrieves the membership of userID in chatID.
func (repo *chatRepository) FindMembership(ctx context.Context, chatID, userID int64) (*entity.ChatMembership, error) {
	var memberM model.ChatMemberModel
	if err := repo.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMembershipNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find chat membership")
	}

	return toMembershipDomain(&memberM), nil
}

// ListMemberships lists every membership of a chat ordered by rank, highest first.
func (repo *chatRepository) ListMemberships(ctx context.Context, chatID int64) ([]*entity.ChatMembership, error) {
	var memberModels []*model.ChatMemberModel
	if err := repo.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("status DESC").
		Order("created_at").
		Find(&memberModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list chat memberships")
	}

	memberships := make([]*entity.ChatMembership, 0, len(memberModels))
	for _, memberM := range memberModels {
		memberships = append(memberships, toMembershipDomain(memberM))
	}

	return memberships, nil
}

// CreateMembership inserts a membership.
func (repo *chatRepository) CreateMembership(ctx context.Context, membership *entity.ChatMembership) error {
	memberM := fromMembershipDomain(membership)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("user is already a chat member")
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrChatNotFound, "failed to create chat membership")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat membership")
	}

	membership.CreatedAt = memberM.CreatedAt

	return nil
}

// UpdateMembership changes the rank of an existing membership.
func (repo *chatRepository) UpdateMembership(ctx context.Context, membership *entity.ChatMembership) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ChatMemberModel{}).
		Where("chat_id = ? AND user_id = ?", membership.ChatID, membership.UserID).
		Update("status", int16(membership.Status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update chat membership")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMembershipNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toMembershipDomain(data *model.ChatMemberModel) *entity.ChatMembership {
	return &entity.ChatMembership{
		ChatID:    data.ChatID,
		UserID:    data.UserID,
		Status:    entity.ChatStatus(data.Status),
		CreatedAt: data.CreatedAt,
	}
}

func fromMembershipDomain(data *entity.ChatMembership) *model.ChatMemberModel {
	return &model.ChatMemberModel{
		ChatID:    data.ChatID,
		UserID:    data.UserID,
		Status:    int16(data.Status),
		CreatedAt: data.CreatedAt,
	}
}
