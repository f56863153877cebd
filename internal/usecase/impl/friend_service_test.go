package impl

import (
	"context"
	"testing"

	domainerrors "birdy/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendService_RequestAndAccept(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)

	require.NoError(t, env.friends.SendFriendRequest(ctx, alice.ID, "bob"))

	requests, err := env.friends.ListFriendRequests(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, requests)

	outgoing, err := env.friends.ListFriendRequests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)

	friends, err := env.access.ResolveFriendship(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, friends)

	require.NoError(t, env.friends.AcceptFriendRequest(ctx, bob.ID, "alice"))

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		friends, err := env.access.ResolveFriendship(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, friends)
	}

	list, err := env.friends.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, list)

	list, err = env.friends.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, list)
}

func TestFriendService_SendFriendRequest_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	env.seedEdge(t, bob, alice, false)

	err := env.friends.SendFriendRequest(ctx, alice.ID, "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	err = env.friends.SendFriendRequest(ctx, alice.ID, "alice")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	// The pending edge already links the pair in the other direction.
	err = env.friends.SendFriendRequest(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestFriendService_AcceptFriendRequest_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	env.seedEdge(t, alice, bob, false)

	// Only the target of a request may accept it.
	err := env.friends.AcceptFriendRequest(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	require.NoError(t, env.friends.AcceptFriendRequest(ctx, bob.ID, "alice"))

	err = env.friends.AcceptFriendRequest(ctx, bob.ID, "alice")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
