package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	deliverycontext "birdy/internal/delivery/context"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxMessageLength = 4096

// dialogService implements the DialogUsecase interface.
type dialogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// DialogServiceParams holds dependencies for DialogService, injected by Fx.
type DialogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewDialogService creates a new dialog service.
func NewDialogService(params DialogServiceParams) usecase.DialogUsecase {
	return &dialogService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *dialogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartDialog returns the dialog with a friend, creating it on first use.
func (srv *dialogService) StartDialog(ctx context.Context, userID int64, friendTag string) (*entity.Dialog, error) {
	var dialog *entity.Dialog

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		friend, err := findUserByTag(ctx, repoFactory.UserRepo(), friendTag)
		if err != nil {
			return err
		}
		if friend.ID == userID {
			return domainerrors.ErrValidationFailed.WithDetails("cannot start a dialog with yourself")
		}

		friends, err := resolveFriendship(ctx, repoFactory.FriendRepo(), userID, friend.ID)
		if err != nil {
			return errors.Wrap(err, "failed to resolve friendship")
		}
		if !friends {
			return domainerrors.ErrInsufficientRights.WithDetails("dialogs are only available between friends")
		}

		dialogRepo := repoFactory.DialogRepo()
		dialog, err = dialogRepo.FindByPair(ctx, userID, friend.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDialogNotFound) {
			return errors.Wrap(err, "failed to find dialog")
		}

		dialog = entity.NewDialog(userID, friend.ID)
		if err := dialogRepo.Create(ctx, dialog); err != nil {
			return errors.Wrap(err, "failed to create dialog")
		}

		srv.log(ctx).Info("Dialog started", slog.String("dialogID", dialog.ID.String()))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dialog, nil
}

// GetDialogs lists the user's dialogs, most recent activity first.
func (srv *dialogService) GetDialogs(ctx context.Context, userID int64) ([]*entity.DialogInfo, error) {
	var infos []*entity.DialogInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dialogRepo := repoFactory.DialogRepo()

		dialogs, err := dialogRepo.FindByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list dialogs")
		}

		ids := make([]int64, 0, len(dialogs))
		for _, dialog := range dialogs {
			ids = append(ids, dialog.Interlocutor(userID))
		}
		tags, err := tagsByID(ctx, repoFactory.UserRepo(), ids)
		if err != nil {
			return err
		}

		activity := make(map[uuid.UUID]time.Time, len(dialogs))
		infos = make([]*entity.DialogInfo, 0, len(dialogs))
		for _, dialog := range dialogs {
			info := &entity.DialogInfo{
				DialogID:        dialog.ID,
				InterlocutorTag: tags[dialog.Interlocutor(userID)],
			}
			activity[dialog.ID] = dialog.CreatedAt

			last, err := dialogRepo.LastMessage(ctx, dialog.ID)
			if err != nil {
				return errors.Wrap(err, "failed to load last message")
			}
			if last != nil {
				info.LastMessage = last.Text
				info.LastMessageTime = last.SentAt
				activity[dialog.ID] = last.SentAt
			}

			infos = append(infos, info)
		}

		sort.SliceStable(infos, func(i, j int) bool {
			return activity[infos[i].DialogID].After(activity[infos[j].DialogID])
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return infos, nil
}

// participantDialog loads a dialog and checks that userID takes part in it.
func participantDialog(ctx context.Context, dialogRepo repository.DialogRepository, userID int64, dialogID uuid.UUID) (*entity.Dialog, error) {
	dialog, err := dialogRepo.FindByID(ctx, dialogID)
	if errors.Is(err, repository.ErrDialogNotFound) {
		return nil, domainerrors.ErrNotFound.WithDetails("dialog not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find dialog")
	}
	if !dialog.HasParticipant(userID) {
		return nil, domainerrors.ErrInsufficientRights.WithDetails("not a dialog participant")
	}

	return dialog, nil
}

// SendMessage appends a message to a dialog the sender takes part in.
func (srv *dialogService) SendMessage(ctx context.Context, userID int64, dialogID uuid.UUID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message text is required")
	}
	if len(text) > maxMessageLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message text is too long")
	}

	var message *entity.Message
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dialogRepo := repoFactory.DialogRepo()

		dialog, err := participantDialog(ctx, dialogRepo, userID, dialogID)
		if err != nil {
			return err
		}

		friends, err := resolveFriendship(ctx, repoFactory.FriendRepo(), userID, dialog.Interlocutor(userID))
		if err != nil {
			return errors.Wrap(err, "failed to resolve friendship")
		}
		if !friends {
			return domainerrors.ErrInsufficientRights.WithDetails("interlocutor is no longer a friend")
		}

		message = &entity.Message{
			DialogID: dialogID,
			SenderID: userID,
			Text:     text,
			SentAt:   time.Now(),
		}

		return errors.Wrap(dialogRepo.CreateMessage(ctx, message), "failed to store message")
	})
	if err != nil {
		return nil, err
	}

	return message, nil
}

// GetMessages pages backwards through a dialog the caller takes part in.
func (srv *dialogService) GetMessages(ctx context.Context, userID int64, dialogID uuid.UUID, input usecase.GetMessagesInput) ([]*entity.Message, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = usecase.DefaultMessagesLimit
	}
	if limit > usecase.MaxMessagesLimit {
		limit = usecase.MaxMessagesLimit
	}

	var messages []*entity.Message
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		dialogRepo := repoFactory.DialogRepo()
		if _, err := participantDialog(ctx, dialogRepo, userID, dialogID); err != nil {
			return err
		}

		var err error
		messages, err = dialogRepo.ListMessages(ctx, dialogID, input.Before, limit)

		return errors.Wrap(err, "failed to list messages")
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}
