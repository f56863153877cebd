package impl

import (
	"context"
	"log/slog"

	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/domain/service"
	"birdy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewUserService creates a new user lookup service.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetUserInfo returns the public profile behind a tag.
func (srv *userService) GetUserInfo(ctx context.Context, viewerID int64, tag string) (*usecase.UserInfo, error) {
	var info *usecase.UserInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := findUserByTag(ctx, repoFactory.UserRepo(), tag)
		if err != nil {
			return err
		}

		info = &usecase.UserInfo{ID: user.ID, UniqueTag: user.UniqueTag, Name: user.Name}

		showEmail := user.ID == viewerID
		if !showEmail {
			showEmail, err = resolveFriendship(ctx, repoFactory.FriendRepo(), viewerID, user.ID)
			if err != nil {
				return errors.Wrap(err, "failed to resolve friendship")
			}
		}
		if showEmail {
			info.Email = user.Email
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// GetUserIDByTag resolves a tag to a user ID.
func (srv *userService) GetUserIDByTag(ctx context.Context, tag string) (int64, error) {
	var userID int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := findUserByTag(ctx, repoFactory.UserRepo(), tag)
		if err != nil {
			return err
		}
		userID = user.ID

		return nil
	})

	return userID, err
}

// GetInviteQRCode renders the friend invite of userID.
func (srv *userService) GetInviteQRCode(ctx context.Context, userID int64) ([]byte, error) {
	var tag string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		tag = user.UniqueTag

		return nil
	})
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateFriendInviteQR(tag)
	if err != nil {
		srv.log(ctx).Error("Failed to render invite QR code", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate invite QR code")
	}

	return png, nil
}
