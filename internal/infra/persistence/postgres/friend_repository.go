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

// friendRepository implements the domain FriendRepository interface.
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a FriendRepository bound to db.
func NewFriendRepository(db *gorm.DB) repository.FriendRepository {
	return &friendRepository{db: db}
}

// Find retrieves the edge stored exactly as (ownerID, targetID).
func (repo *friendRepository) Find(ctx context.Context, ownerID, targetID int64) (*entity.FriendEdge, error) {
	var edgeM model.FriendEdgeModel
	if err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND target_id = ?", ownerID, targetID).
		First(&edgeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFriendEdgeNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find friend edge")
	}

	return toFriendEdgeDomain(&edgeM), nil
}

// Create inserts a new edge.
func (repo *friendRepository) Create(ctx context.Context, edge *entity.FriendEdge) error {
	edgeM := fromFriendEdgeDomain(edge)

	if err := repo.db.WithContext(ctx).Create(edgeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("friend edge already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserNotFound, "failed to create friend edge")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create friend edge")
	}

	edge.CreatedAt = edgeM.CreatedAt

	return nil
}

// Update modifies the accepted flag of an existing edge.
func (repo *friendRepository) Update(ctx context.Context, edge *entity.FriendEdge) error {
	result := repo.db.WithContext(ctx).
		Model(&model.FriendEdgeModel{}).
		Where("owner_id = ? AND target_id = ?", edge.OwnerID, edge.TargetID).
		Update("request_accepted", edge.RequestAccepted)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update friend edge")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFriendEdgeNotFound
	}

	return nil
}

// FindByUserID lists every edge where userID is owner or target.
func (repo *friendRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.FriendEdge, error) {
	var edgeModels []*model.FriendEdgeModel
	if err := repo.db.WithContext(ctx).
		Where("owner_id = ? OR target_id = ?", userID, userID).
		Order("created_at").
		Find(&edgeModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list friend edges")
	}

	edges := make([]*entity.FriendEdge, 0, len(edgeModels))
	for _, edgeM := range edgeModels {
		edges = append(edges, toFriendEdgeDomain(edgeM))
	}

	return edges, nil
}

// --- Mapper Functions ---

func toFriendEdgeDomain(data *model.FriendEdgeModel) *entity.FriendEdge {
	return &entity.FriendEdge{
		OwnerID:         data.OwnerID,
		TargetID:        data.TargetID,
		RequestAccepted: data.RequestAccepted,
		CreatedAt:       data.CreatedAt,
	}
}

func fromFriendEdgeDomain(data *entity.FriendEdge) *model.FriendEdgeModel {
	return &model.FriendEdgeModel{
		OwnerID:         data.OwnerID,
		TargetID:        data.TargetID,
		RequestAccepted: data.RequestAccepted,
		CreatedAt:       data.CreatedAt,
	}
}
