package memory

import (
	"context"
	"testing"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, store *Store, tag, email string) *entity.User {
	t.Helper()

	user := &entity.User{UniqueTag: tag, Email: email, Name: tag, PasswordHash: "hash"}
	err := store.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(context.Background(), user)
	})
	require.NoError(t, err)

	return user
}

func TestStore_ExecuteRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("boom")

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{UniqueTag: "alice", Email: "a@x.io"}
		require.NoError(t, f.UserRepo().Create(ctx, user))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, findErr := f.UserRepo().FindByUniqueTag(ctx, "alice")

		return findErr
	})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStore_ExecuteRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice := createUser(t, store, "alice", "a@x.io")

	assert.Panics(t, func() {
		_ = store.Execute(ctx, func(f repository.RepositoryFactory) error {
			alice.Status = entity.UserStatusConfirmed
			_ = f.UserRepo().Update(ctx, alice)
			panic("boom")
		})
	})

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		user, findErr := f.UserRepo().FindByID(ctx, alice.ID)
		require.NoError(t, findErr)
		assert.False(t, user.IsConfirmed())

		return nil
	})
	require.NoError(t, err)
}

func TestStore_ExecuteHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	createUser(t, store, "alice", "a@x.io")

	tests := []struct {
		name  string
		tag   string
		email string
		want  error
	}{
		{name: "duplicate tag", tag: "alice", email: "other@x.io", want: domainerrors.ErrDuplicateTag},
		{name: "duplicate email", tag: "bob", email: "a@x.io", want: domainerrors.ErrDuplicateAccount},
		{name: "duplicate email ignoring case", tag: "bob", email: "A@X.IO", want: domainerrors.ErrDuplicateAccount},
		{name: "both duplicate reports tag", tag: "alice", email: "a@x.io", want: domainerrors.ErrDuplicateTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
				return f.UserRepo().Create(ctx, &entity.User{UniqueTag: tt.tag, Email: tt.email})
			})
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice := createUser(t, store, "alice", "a@x.io")

	_ = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		user, err := f.UserRepo().FindByID(ctx, alice.ID)
		require.NoError(t, err)
		user.Name = "mutated"

		again, err := f.UserRepo().FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Name)

		return nil
	})
}

func TestSessionRepository_ScopedDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice := createUser(t, store, "alice", "a@x.io")
	bob := createUser(t, store, "bob", "b@x.io")

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		sessions := f.SessionRepo()
		require.NoError(t, sessions.Create(ctx, &entity.Session{UserID: alice.ID, TokenHash: "h1"}))
		require.NoError(t, sessions.Create(ctx, &entity.Session{UserID: alice.ID, TokenHash: "h2"}))
		require.NoError(t, sessions.Create(ctx, &entity.Session{UserID: bob.ID, TokenHash: "h3"}))

		assert.ErrorIs(t, sessions.DeleteByTokenHash(ctx, bob.ID, "h1"), repository.ErrSessionNotFound)
		require.NoError(t, sessions.DeleteByTokenHash(ctx, alice.ID, "h1"))

		count, err := sessions.CountByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, sessions.DeleteByUserID(ctx, alice.ID))
		_, err = sessions.FindByTokenHash(ctx, "h2")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)

		_, err = sessions.FindByTokenHash(ctx, "h3")

		return err
	})
	require.NoError(t, err)
}

func TestDialogRepository_Messages(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice := createUser(t, store, "alice", "a@x.io")
	bob := createUser(t, store, "bob", "b@x.io")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	dialog := entity.NewDialog(bob.ID, alice.ID)

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		dialogs := f.DialogRepo()
		require.NoError(t, dialogs.Create(ctx, dialog))

		found, err := dialogs.FindByPair(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, dialog.ID, found.ID)
		assert.Error(t, dialogs.Create(ctx, entity.NewDialog(alice.ID, bob.ID)))

		last, err := dialogs.LastMessage(ctx, dialog.ID)
		require.NoError(t, err)
		assert.Nil(t, last)

		for i, text := range []string{"one", "two", "three"} {
			msg := &entity.Message{DialogID: dialog.ID, SenderID: alice.ID, Text: text, SentAt: base.Add(time.Duration(i) * time.Minute)}
			require.NoError(t, dialogs.CreateMessage(ctx, msg))
		}

		last, err = dialogs.LastMessage(ctx, dialog.ID)
		require.NoError(t, err)
		assert.Equal(t, "three", last.Text)

		page, err := dialogs.ListMessages(ctx, dialog.ID, base.Add(2*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "two", page[0].Text)
		assert.Equal(t, "one", page[1].Text)

		return nil
	})
	require.NoError(t, err)
}
