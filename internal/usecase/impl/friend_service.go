package impl

import (
	"context"
	"log/slog"

	deliverycontext "birdy/internal/delivery/context"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// friendService implements the FriendUsecase interface.
type friendService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// FriendServiceParams holds dependencies for FriendService, injected by Fx.
type FriendServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewFriendService creates a new friend service.
func NewFriendService(params FriendServiceParams) usecase.FriendUsecase {
	return &friendService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *friendService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendFriendRequest stores a pending edge from userID to the target.
func (srv *friendService) SendFriendRequest(ctx context.Context, userID int64, targetTag string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		target, err := findUserByTag(ctx, repoFactory.UserRepo(), targetTag)
		if err != nil {
			return err
		}
		if target.ID == userID {
			return domainerrors.ErrValidationFailed.WithDetails("cannot send a friend request to yourself")
		}

		friendRepo := repoFactory.FriendRepo()
		_, err = findEdgeEitherWay(ctx, friendRepo, userID, target.ID)
		if err == nil {
			return domainerrors.ErrConflict.WithDetails("friend request already exists")
		}
		if !errors.Is(err, repository.ErrFriendEdgeNotFound) {
			return err
		}

		edge := &entity.FriendEdge{OwnerID: userID, TargetID: target.ID}
		if err := friendRepo.Create(ctx, edge); err != nil {
			return errors.Wrap(err, "failed to create friend request")
		}

		srv.log(ctx).Info("Friend request sent", slog.Int64("ownerID", userID), slog.Int64("targetID", target.ID))

		return nil
	})
}

// AcceptFriendRequest accepts the pending edge the requester sent to userID.
func (srv *friendService) AcceptFriendRequest(ctx context.Context, userID int64, requesterTag string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requester, err := findUserByTag(ctx, repoFactory.UserRepo(), requesterTag)
		if err != nil {
			return err
		}

		friendRepo := repoFactory.FriendRepo()
		edge, err := friendRepo.Find(ctx, requester.ID, userID)
		if errors.Is(err, repository.ErrFriendEdgeNotFound) || (err == nil && edge.RequestAccepted) {
			return domainerrors.ErrNotFound.WithDetails("no pending friend request")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find friend request")
		}

		edge.RequestAccepted = true
		if err := friendRepo.Update(ctx, edge); err != nil {
			return errors.Wrap(err, "failed to accept friend request")
		}

		srv.log(ctx).Info("Friend request accepted", slog.Int64("ownerID", requester.ID), slog.Int64("targetID", userID))

		return nil
	})
}

// ListFriends returns the tags of every accepted friend.
func (srv *friendService) ListFriends(ctx context.Context, userID int64) ([]string, error) {
	return srv.listTags(ctx, userID, func(edge *entity.FriendEdge) bool {
		return edge.RequestAccepted
	})
}

// ListFriendRequests returns the tags of users with a pending request to userID.
func (srv *friendService) ListFriendRequests(ctx context.Context, userID int64) ([]string, error) {
	return srv.listTags(ctx, userID, func(edge *entity.FriendEdge) bool {
		return !edge.RequestAccepted && edge.TargetID == userID
	})
}

func (srv *friendService) listTags(ctx context.Context, userID int64, keep func(*entity.FriendEdge) bool) ([]string, error) {
	var result []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		edges, err := repoFactory.FriendRepo().FindByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list friend edges")
		}

		ids := make([]int64, 0, len(edges))
		for _, edge := range edges {
			if keep(edge) {
				ids = append(ids, edge.Other(userID))
			}
		}

		tags, err := tagsByID(ctx, repoFactory.UserRepo(), ids)
		if err != nil {
			return err
		}

		result = make([]string, 0, len(ids))
		for _, id := range ids {
			if tag, ok := tags[id]; ok {
				result = append(result, tag)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
