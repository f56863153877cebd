package memory

import (
	"context"
	"sort"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
)

type chatRepository struct {
	state *state
}

func (r *chatRepository) CreateChat(_ context.Context, chat *entity.Chat) error {
	r.state.nextChatID++
	chat.ID = r.state.nextChatID
	chat.CreatedAt = time.Now()

	cp := *chat
	r.state.chats[chat.ID] = &cp

	return nil
}

func (r *chatRepository) FindChat(_ context.Context, chatID int64) (*entity.Chat, error) {
	chat, ok := r.state.chats[chatID]
	if !ok {
		return nil, repository.ErrChatNotFound
	}
	cp := *chat

	return &cp, nil
}

func (r *chatRepository) FindMembership(_ context.Context, chatID, userID int64) (*entity.ChatMembership, error) {
	membership, ok := r.state.members[memberKey{chatID: chatID, userID: userID}]
	if !ok {
		return nil, repository.ErrMembershipNotFound
	}
	cp := *membership

	return &cp, nil
}

func (r *chatRepository) ListMemberships(_ context.Context, chatID int64) ([]*entity.ChatMembership, error) {
	memberships := make([]*entity.ChatMembership, 0)
	for _, membership := range r.state.members {
		if membership.ChatID == chatID {
			cp := *membership
			memberships = append(memberships, &cp)
		}
	}

	sort.SliceStable(memberships, func(i, j int) bool {
		if memberships[i].Status != memberships[j].Status {
			return memberships[i].Status > memberships[j].Status
		}

		return memberships[i].UserID < memberships[j].UserID
	})

	return memberships, nil
}

func (r *chatRepository) CreateMembership(_ context.Context, membership *entity.ChatMembership) error {
	key := memberKey{chatID: membership.ChatID, userID: membership.UserID}
	if _, ok := r.state.members[key]; ok {
		return domainerrors.ErrConflict.WrapMessage("user is already a chat member")
	}
	if _, ok := r.state.chats[membership.ChatID]; !ok {
		return repository.ErrChatNotFound
	}
	if _, ok := r.state.users[membership.UserID]; !ok {
		return repository.ErrUserNotFound
	}

	membership.CreatedAt = time.Now()
	cp := *membership
	r.state.members[key] = &cp

	return nil
}

func (r *chatRepository) UpdateMembership(_ context.Context, membership *entity.ChatMembership) error {
	stored, ok := r.state.members[memberKey{chatID: membership.ChatID, userID: membership.UserID}]
	if !ok {
		return repository.ErrMembershipNotFound
	}
	stored.Status = membership.Status

	return nil
}
