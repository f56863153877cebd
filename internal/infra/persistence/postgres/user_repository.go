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

// userRepository implements the domain UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserRepository bound to db, which may be a transaction.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.first(ctx, "find user by id", "id = ?", id)
}

// FindByIDs retrieves every listed user, skipping IDs that do not exist.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var userModels []*model.UserModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&userModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by ids")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.first(ctx, "find user by email", "lower(email) = lower(?)", email)
}

// FindByUniqueTag retrieves a single user by their unique tag.
func (repo *userRepository) FindByUniqueTag(ctx context.Context, tag string) (*entity.User, error) {
	return repo.first(ctx, "find user by unique tag", "unique_tag = ?", tag)
}

func (repo *userRepository) first(ctx context.Context, op string, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to "+op)
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. The unique constraints on tag and email are
// translated into the registration errors.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if domainErr := translateUserConstraintError(err); domainErr != nil {
			return errors.Wrap(domainErr, "failed to create user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(&model.UserModel{ID: user.ID}).Updates(map[string]any{
		"unique_tag":    userM.UniqueTag,
		"email":         userM.Email,
		"name":          userM.Name,
		"password_hash": userM.PasswordHash,
		"status":        userM.Status,
	})
	if result.Error != nil {
		if domainErr := translateUserConstraintError(result.Error); domainErr != nil {
			return errors.Wrap(domainErr, "failed to update user")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		UniqueTag:    data.UniqueTag,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Status:       entity.UserStatus(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		UniqueTag:    data.UniqueTag,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Status:       int16(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
