package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogService_Conversation(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	env.seedEdge(t, bob, alice, true)

	dialog, err := env.dialogs.StartDialog(ctx, alice.ID, "bob")
	require.NoError(t, err)

	again, err := env.dialogs.StartDialog(ctx, bob.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, dialog.ID, again.ID, "a pair maps onto one dialog")

	texts := []string{"hi", "hello", "how are you?"}
	for i, text := range texts {
		sender := alice.ID
		if i%2 == 1 {
			sender = bob.ID
		}
		_, err := env.dialogs.SendMessage(ctx, sender, dialog.ID, text)
		require.NoError(t, err)
	}

	messages, err := env.dialogs.GetMessages(ctx, bob.ID, dialog.ID, usecase.GetMessagesInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "how are you?", messages[0].Text)
	assert.Equal(t, "hello", messages[1].Text)

	messages, err = env.dialogs.GetMessages(ctx, alice.ID, dialog.ID, usecase.GetMessagesInput{})
	require.NoError(t, err)
	assert.Len(t, messages, 3)

	messages, err = env.dialogs.GetMessages(ctx, alice.ID, dialog.ID, usecase.GetMessagesInput{
		Before: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, messages)

	dialogs, err := env.dialogs.GetDialogs(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, dialogs, 1)
	assert.Equal(t, "alice", dialogs[0].InterlocutorTag)
	assert.Equal(t, "how are you?", dialogs[0].LastMessage)
}

func TestDialogService_GetDialogs_OrdersByActivity(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	carol := env.seedUser(t, "carol", true)
	env.seedEdge(t, alice, bob, true)
	env.seedEdge(t, alice, carol, true)

	withBob, err := env.dialogs.StartDialog(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.dialogs.StartDialog(ctx, alice.ID, "carol")
	require.NoError(t, err)

	_, err = env.dialogs.SendMessage(ctx, bob.ID, withBob.ID, "ping")
	require.NoError(t, err)

	dialogs, err := env.dialogs.GetDialogs(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, dialogs, 2)
	assert.Equal(t, "bob", dialogs[0].InterlocutorTag)
	assert.Equal(t, "carol", dialogs[1].InterlocutorTag)
	assert.Empty(t, dialogs[1].LastMessage)
}

func TestDialogService_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)
	mallory := env.seedUser(t, "mallory", true)
	env.seedEdge(t, alice, bob, true)
	env.seedEdge(t, alice, mallory, false)

	_, err := env.dialogs.StartDialog(ctx, alice.ID, "mallory")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))

	_, err = env.dialogs.StartDialog(ctx, alice.ID, "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	_, err = env.dialogs.StartDialog(ctx, alice.ID, "alice")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	dialog, err := env.dialogs.StartDialog(ctx, alice.ID, "bob")
	require.NoError(t, err)

	_, err = env.dialogs.SendMessage(ctx, mallory.ID, dialog.ID, "let me in")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))

	_, err = env.dialogs.GetMessages(ctx, mallory.ID, dialog.ID, usecase.GetMessagesInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientRights))

	_, err = env.dialogs.SendMessage(ctx, alice.ID, uuid.New(), "hello?")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = env.dialogs.SendMessage(ctx, alice.ID, dialog.ID, "   ")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = env.dialogs.SendMessage(ctx, alice.ID, dialog.ID, strings.Repeat("a", maxMessageLength+1))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
