package impl

import (
	"context"
	"testing"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Lifecycle(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	owner := env.seedUser(t, "owner", true)
	friend := env.seedUser(t, "friend", true)
	stranger := env.seedUser(t, "stranger", true)
	env.seedEdge(t, owner, friend, true)

	chat, err := env.chats.CreateChat(ctx, owner.ID, "  flock  ")
	require.NoError(t, err)
	assert.Equal(t, "flock", chat.Name)

	require.NoError(t, env.chats.AddChatMember(ctx, owner.ID, chat.ID, "friend"))

	err = env.chats.AddChatMember(ctx, owner.ID, chat.ID, "friend")
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))

	err = env.chats.AddChatMember(ctx, owner.ID, chat.ID, "stranger")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))

	// A plain member cannot add anyone.
	err = env.chats.AddChatMember(ctx, friend.ID, chat.ID, "owner")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))

	require.NoError(t, env.chats.SetChatMemberStatus(ctx, owner.ID, chat.ID, "friend", entity.ChatStatusModerator))
	require.NoError(t, env.access.CheckChatAccess(ctx, friend.ID, chat.ID, entity.ChatStatusModerator))

	members, err := env.chats.ListChatMembers(ctx, friend.ID, chat.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "owner", members[0].UniqueTag)
	assert.Equal(t, "owner", members[0].Status)
	assert.Equal(t, "friend", members[1].UniqueTag)
	assert.Equal(t, "moderator", members[1].Status)

	_, err = env.chats.ListChatMembers(ctx, stranger.ID, chat.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))
}

func TestChatService_SetChatMemberStatus_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	owner := env.seedUser(t, "owner", true)
	friend := env.seedUser(t, "friend", true)
	env.seedUser(t, "outsider", true)
	env.seedEdge(t, friend, owner, true)

	chat, err := env.chats.CreateChat(ctx, owner.ID, "flock")
	require.NoError(t, err)
	require.NoError(t, env.chats.AddChatMember(ctx, owner.ID, chat.ID, "friend"))

	err = env.chats.SetChatMemberStatus(ctx, owner.ID, chat.ID, "friend", entity.ChatStatusOwner)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	err = env.chats.SetChatMemberStatus(ctx, owner.ID, chat.ID, "outsider", entity.ChatStatusModerator)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	err = env.chats.SetChatMemberStatus(ctx, owner.ID, chat.ID, "owner", entity.ChatStatusMember)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	require.NoError(t, env.chats.SetChatMemberStatus(ctx, owner.ID, chat.ID, "friend", entity.ChatStatusModerator))
	err = env.chats.SetChatMemberStatus(ctx, friend.ID, chat.ID, "friend", entity.ChatStatusMember)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))
}

func TestChatService_CreateChat_RequiresName(t *testing.T) {
	env := newTestEnv(t, 0)
	owner := env.seedUser(t, "owner", true)

	_, err := env.chats.CreateChat(context.Background(), owner.ID, "   ")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
