// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/pkg/errors"
)

// resolveFriendship probes (target, owner) first and then (owner, target).
// A pair with no stored edge in either direction is not a friendship.
func resolveFriendship(ctx context.Context, friendRepo repository.FriendRepository, ownerUserID, targetUserID int64) (bool, error) {
	edge, err := findEdgeEitherWay(ctx, friendRepo, ownerUserID, targetUserID)
	if errors.Is(err, repository.ErrFriendEdgeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return edge.RequestAccepted, nil
}

// findEdgeEitherWay returns the single edge stored for the pair in whichever
// direction it was written.
func findEdgeEitherWay(ctx context.Context, friendRepo repository.FriendRepository, ownerUserID, targetUserID int64) (*entity.FriendEdge, error) {
	edge, err := friendRepo.Find(ctx, targetUserID, ownerUserID)
	if err == nil {
		return edge, nil
	}
	if !errors.Is(err, repository.ErrFriendEdgeNotFound) {
		return nil, errors.Wrap(err, "failed to find friend edge")
	}

	edge, err = friendRepo.Find(ctx, ownerUserID, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrFriendEdgeNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find inverse friend edge")
	}

	return edge, nil
}

// checkChatAccess fails unless userID holds at least the required rank. Equal rank is enough.
func checkChatAccess(ctx context.Context, chatRepo repository.ChatRepository, userID, chatID int64, required entity.ChatStatus) (*entity.ChatMembership, error) {
	membership, err := chatRepo.FindMembership(ctx, chatID, userID)
	if errors.Is(err, repository.ErrMembershipNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInsufficientRights, "not a chat member")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find chat membership")
	}

	if !membership.Status.AtLeast(required) {
		return nil, errors.Wrapf(domainerrors.ErrInsufficientRights, "rank %s is below %s", membership.Status, required)
	}

	return membership, nil
}

// findUserByTag maps a missing tag onto the user-facing not-found error.
func findUserByTag(ctx context.Context, userRepo repository.UserRepository, tag string) (*entity.User, error) {
	user, err := userRepo.FindByUniqueTag(ctx, tag)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WithDetails("no user with tag " + tag)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by tag")
	}

	return user, nil
}

// tagsByID loads the unique tags of the listed users.
func tagsByID(ctx context.Context, userRepo repository.UserRepository, ids []int64) (map[int64]string, error) {
	users, err := userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load users")
	}

	tags := make(map[int64]string, len(users))
	for _, user := range users {
		tags[user.ID] = user.UniqueTag
	}

	return tags, nil
}
