package impl

import (
	"context"
	"log/slog"

	deliverycontext "birdy/internal/delivery/context"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/domain/service"
	"birdy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accessService implements the AccessUsecase interface.
type accessService struct {
	txManager     repository.TransactionManager
	sessionTokens service.SessionTokenService
	logger        *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	SessionTokens service.SessionTokenService
	Logger        *slog.Logger
}

// NewAccessService creates a new access control service.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		txManager:     params.TxManager,
		sessionTokens: params.SessionTokens,
		logger:        params.Logger,
	}
}

func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ValidateToken resolves a raw session token to its owning user.
func (srv *accessService) ValidateToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domainerrors.ErrInvalidSession.WithDetails("missing session token")
	}

	tokenHash := srv.sessionTokens.HashToken(token)

	var userID int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		session, err := repoFactory.SessionRepo().FindByTokenHash(ctx, tokenHash)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return errors.Wrap(domainerrors.ErrInvalidSession, "session not found")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find session")
		}
		userID = session.UserID

		return nil
	})
	if err != nil {
		if domainerrors.KindOf(err) == domainerrors.KindUnexpected {
			srv.log(ctx).Error("Failed to validate session token", slog.Any("error", err))
		}

		return 0, err
	}

	return userID, nil
}

// CheckChatAccess checks the caller's rank in a chat.
func (srv *accessService) CheckChatAccess(ctx context.Context, userID, chatID int64, required entity.ChatStatus) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		_, err := checkChatAccess(ctx, repoFactory.ChatRepo(), userID, chatID, required)

		return err
	})
}

// ResolveFriendship reports whether both users are accepted friends.
func (srv *accessService) ResolveFriendship(ctx context.Context, ownerUserID, targetUserID int64) (bool, error) {
	var friends bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		friends, err = resolveFriendship(ctx, repoFactory.FriendRepo(), ownerUserID, targetUserID)

		return err
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to resolve friendship")
	}

	return friends, nil
}
