package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/pkg/errors"
)

type userRepository struct {
	state *state
}

func (r *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.state.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user

	return &cp, nil
}

func (r *userRepository) FindByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make([]*entity.User, 0, len(sorted))
	for _, id := range sorted {
		if user, ok := r.state.users[id]; ok {
			cp := *user
			users = append(users, &cp)
		}
	}

	return users, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) FindByUniqueTag(_ context.Context, tag string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.UniqueTag == tag })
}

func (r *userRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, user := range r.state.users {
		if match(user) {
			cp := *user

			return &cp, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// checkUnique mirrors the unique constraints of the users table. The tag
// constraint is reported ahead of the email one.
func (r *userRepository) checkUnique(user *entity.User) error {
	for id, existing := range r.state.users {
		if id != user.ID && existing.UniqueTag == user.UniqueTag {
			return errors.Wrap(domainerrors.ErrDuplicateTag, "unique tag constraint")
		}
	}
	for id, existing := range r.state.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return errors.Wrap(domainerrors.ErrDuplicateAccount, "email constraint")
		}
	}

	return nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	if err := r.checkUnique(&entity.User{UniqueTag: user.UniqueTag, Email: user.Email}); err != nil {
		return err
	}

	r.state.nextUserID++
	now := time.Now()
	user.ID = r.state.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now

	cp := *user
	r.state.users[user.ID] = &cp

	return nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.state.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	user.UpdatedAt = time.Now()
	cp := *user
	r.state.users[user.ID] = &cp

	return nil
}
