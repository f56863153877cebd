package impl

import (
	"context"
	"testing"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessService_ValidateToken_Rejects(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	for _, token := range []string{"", "never-issued"} {
		_, err := env.access.ValidateToken(ctx, token)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidSession), "token %q", token)
		assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))
	}
}

func TestAccessService_CheckChatAccess(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	owner := env.seedUser(t, "owner", true)
	moderator := env.seedUser(t, "moderator", true)
	member := env.seedUser(t, "member", true)
	outsider := env.seedUser(t, "outsider", true)

	chat, err := env.chats.CreateChat(ctx, owner.ID, "flock")
	require.NoError(t, err)

	require.NoError(t, env.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.ChatRepo().CreateMembership(ctx, &entity.ChatMembership{ChatID: chat.ID, UserID: moderator.ID, Status: entity.ChatStatusModerator}); err != nil {
			return err
		}

		return f.ChatRepo().CreateMembership(ctx, &entity.ChatMembership{ChatID: chat.ID, UserID: member.ID, Status: entity.ChatStatusMember})
	}))

	tests := []struct {
		name     string
		userID   int64
		required entity.ChatStatus
		allowed  bool
	}{
		{name: "owner needs owner", userID: owner.ID, required: entity.ChatStatusOwner, allowed: true},
		{name: "owner needs member", userID: owner.ID, required: entity.ChatStatusMember, allowed: true},
		{name: "moderator equal rank", userID: moderator.ID, required: entity.ChatStatusModerator, allowed: true},
		{name: "moderator needs owner", userID: moderator.ID, required: entity.ChatStatusOwner, allowed: false},
		{name: "member equal rank", userID: member.ID, required: entity.ChatStatusMember, allowed: true},
		{name: "member needs moderator", userID: member.ID, required: entity.ChatStatusModerator, allowed: false},
		{name: "no membership", userID: outsider.ID, required: entity.ChatStatusMember, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.access.CheckChatAccess(ctx, tt.userID, chat.ID, tt.required)
			if tt.allowed {
				assert.NoError(t, err)

				return
			}
			assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))
			assert.Equal(t, domainerrors.KindInsufficientRights, domainerrors.KindOf(err))
		})
	}
}

func TestAccessService_ResolveFriendship(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	carol := env.seedUser(t, "carol", true)
	dave := env.seedUser(t, "dave", true)

	env.seedEdge(t, alice, bob, true)
	env.seedEdge(t, carol, alice, false)

	tests := []struct {
		name   string
		owner  int64
		target int64
		want   bool
	}{
		{name: "accepted edge forward", owner: alice.ID, target: bob.ID, want: true},
		{name: "accepted edge reverse", owner: bob.ID, target: alice.ID, want: true},
		{name: "pending edge", owner: alice.ID, target: carol.ID, want: false},
		{name: "pending edge reverse", owner: carol.ID, target: alice.ID, want: false},
		{name: "no edge either way", owner: alice.ID, target: dave.ID, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.access.ResolveFriendship(ctx, tt.owner, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessService_ResolveFriendship_EdgeStoredByOtherWins(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)

	// Both directions are only reachable by writing the store directly.
	env.seedEdge(t, alice, bob, false)
	env.seedEdge(t, bob, alice, true)

	got, err := env.access.ResolveFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = env.access.ResolveFriendship(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, got)

	err = env.friends.SendFriendRequest(ctx, alice.ID, "bob")
	assert.Error(t, err)
}
