package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "birdy/internal/delivery/context"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateChat creates a chat owned by userID.
func (srv *chatService) CreateChat(ctx context.Context, userID int64, name string) (*entity.Chat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("chat name is required")
	}

	chat := &entity.Chat{Name: name}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.ChatRepo()
		if err := chatRepo.CreateChat(ctx, chat); err != nil {
			return errors.Wrap(err, "failed to create chat")
		}

		owner := &entity.ChatMembership{ChatID: chat.ID, UserID: userID, Status: entity.ChatStatusOwner}

		return errors.Wrap(chatRepo.CreateMembership(ctx, owner), "failed to add chat owner")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Chat created", slog.Int64("chatID", chat.ID), slog.Int64("ownerID", userID))

	return chat, nil
}

// AddChatMember adds a friend of the caller to the chat. Requires Moderator.
func (srv *chatService) AddChatMember(ctx context.Context, userID, chatID int64, memberTag string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.ChatRepo()
		if _, err := checkChatAccess(ctx, chatRepo, userID, chatID, entity.ChatStatusModerator); err != nil {
			return err
		}

		member, err := findUserByTag(ctx, repoFactory.UserRepo(), memberTag)
		if err != nil {
			return err
		}

		friends, err := resolveFriendship(ctx, repoFactory.FriendRepo(), userID, member.ID)
		if err != nil {
			return errors.Wrap(err, "failed to resolve friendship")
		}
		if !friends {
			return domainerrors.ErrInsufficientRights.WithDetails("only friends can be added to a chat")
		}

		_, err = chatRepo.FindMembership(ctx, chatID, member.ID)
		if err == nil {
			return domainerrors.ErrConflict.WithDetails("user is already a chat member")
		}
		if !errors.Is(err, repository.ErrMembershipNotFound) {
			return errors.Wrap(err, "failed to find chat membership")
		}

		membership := &entity.ChatMembership{ChatID: chatID, UserID: member.ID, Status: entity.ChatStatusMember}
		if err := chatRepo.CreateMembership(ctx, membership); err != nil {
			return errors.Wrap(err, "failed to add chat member")
		}

		srv.log(ctx).Info("Chat member added", slog.Int64("chatID", chatID), slog.Int64("memberID", member.ID))

		return nil
	})
}

// SetChatMemberStatus changes a member's rank. Requires Owner.
func (srv *chatService) SetChatMemberStatus(ctx context.Context, userID, chatID int64, memberTag string, status entity.ChatStatus) error {
	if status != entity.ChatStatusMember && status != entity.ChatStatusModerator {
		return domainerrors.ErrValidationFailed.WithDetails("status must be member or moderator")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.ChatRepo()
		if _, err := checkChatAccess(ctx, chatRepo, userID, chatID, entity.ChatStatusOwner); err != nil {
			return err
		}

		member, err := findUserByTag(ctx, repoFactory.UserRepo(), memberTag)
		if err != nil {
			return err
		}

		membership, err := chatRepo.FindMembership(ctx, chatID, member.ID)
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrNotFound.WithDetails("user is not a chat member")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find chat membership")
		}
		if membership.Status == entity.ChatStatusOwner {
			return domainerrors.ErrValidationFailed.WithDetails("owner status cannot be changed")
		}

		membership.Status = status

		return errors.Wrap(chatRepo.UpdateMembership(ctx, membership), "failed to update chat membership")
	})
}

// ListChatMembers lists the members of a chat. Requires Member.
func (srv *chatService) ListChatMembers(ctx context.Context, userID, chatID int64) ([]*entity.ChatMemberInfo, error) {
	var members []*entity.ChatMemberInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.ChatRepo()
		if _, err := checkChatAccess(ctx, chatRepo, userID, chatID, entity.ChatStatusMember); err != nil {
			return err
		}

		memberships, err := chatRepo.ListMemberships(ctx, chatID)
		if err != nil {
			return errors.Wrap(err, "failed to list chat members")
		}

		ids := make([]int64, 0, len(memberships))
		for _, membership := range memberships {
			ids = append(ids, membership.UserID)
		}
		tags, err := tagsByID(ctx, repoFactory.UserRepo(), ids)
		if err != nil {
			return err
		}

		members = make([]*entity.ChatMemberInfo, 0, len(memberships))
		for _, membership := range memberships {
			members = append(members, &entity.ChatMemberInfo{
				UserID:    membership.UserID,
				UniqueTag: tags[membership.UserID],
				Status:    membership.Status.String(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}
