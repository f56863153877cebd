package impl

import (
	"context"
	"testing"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/domain/service"
	"birdy/internal/infra/auth"
	"birdy/internal/infra/persistence/memory"
	mockService "birdy/internal/mocks/service"
	"birdy/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerInput(tag, email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{UniqueTag: tag, Email: email, Password: testPassword, Name: tag}
}

func TestAccountService_FullLifecycle(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	out, err := env.account.Register(ctx, registerInput("alice", "a@x.io"))
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusUnconfirmed, out.User.Status)
	require.Len(t, env.events, 1)
	assert.Equal(t, "alice", env.events[0].UniqueTag)
	assert.Equal(t, out.User.ID, env.events[0].UserID)

	_, err = env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: "a@x.io", Password: testPassword})
	assert.True(t, errors.Is(err, domainerrors.ErrEmailNotConfirmed))

	require.NoError(t, env.account.ConfirmEmail(ctx, "a@x.io", env.lastConfirmationToken(t)))

	login, err := env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: "a@x.io", Password: testPassword})
	require.NoError(t, err)

	userID, err := env.access.ValidateToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)

	err = env.account.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		OldPassword: testPassword,
		NewPassword: "EvenStronger456!",
	})
	require.NoError(t, err)

	_, err = env.access.ValidateToken(ctx, login.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSession))
	assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))

	_, err = env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: "a@x.io", Password: "EvenStronger456!"})
	assert.NoError(t, err)
}

func TestAccountService_Register_Duplicates(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	_, err := env.account.Register(ctx, registerInput("alice", "a@x.io"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input *usecase.RegisterInput
		want  *domainerrors.BaseError
		kind  domainerrors.Kind
	}{
		{name: "tag taken", input: registerInput("alice", "b@x.io"), want: domainerrors.ErrDuplicateTag, kind: domainerrors.KindDuplicateTag},
		{name: "email taken", input: registerInput("bob", "a@x.io"), want: domainerrors.ErrDuplicateAccount, kind: domainerrors.KindDuplicateAccount},
		{name: "both taken reports tag", input: registerInput("alice", "a@x.io"), want: domainerrors.ErrDuplicateTag, kind: domainerrors.KindDuplicateTag},
		{name: "email taken in another case", input: registerInput("bob", " A@X.io "), want: domainerrors.ErrDuplicateAccount, kind: domainerrors.KindDuplicateAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.account.Register(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, tt.kind, domainerrors.KindOf(err))
		})
	}

	assert.Len(t, env.events, 1)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	env := newTestEnv(t, 0)

	input := registerInput("alice", "a@x.io")
	input.Password = "weak"

	_, err := env.account.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	assert.Equal(t, domainerrors.KindArgument, domainerrors.KindOf(err))
	assert.Empty(t, env.events)
}

func TestAccountService_Register_PublishFailureKeepsAccount(t *testing.T) {
	cfg := newTestConfig(0)
	store := memory.NewStore()
	confirmations, err := auth.NewConfirmationTokenService(cfg)
	require.NoError(t, err)

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishConfirmationRequested(mock.Anything, mock.MatchedBy(func(e *service.ConfirmationRequestedEvent) bool {
			return e.Email == "a@x.io"
		})).
		Return(errors.New("broker down")).
		Once()

	account := NewAccountService(AccountServiceParams{
		TxManager:          store,
		Hasher:             auth.NewBcryptHasher(cfg),
		SessionTokens:      auth.NewSessionTokenService(cfg),
		ConfirmationTokens: confirmations,
		Publisher:          publisher,
		Config:             cfg,
		Logger:             newDiscardLogger(),
	})

	_, err = account.Register(context.Background(), registerInput("alice", "a@x.io"))
	require.NoError(t, err)

	err = store.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		_, findErr := f.UserRepo().FindByEmail(context.Background(), "a@x.io")

		return findErr
	})
	assert.NoError(t, err)
}

func TestAccountService_ConfirmEmail_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	_, err := env.account.Register(ctx, registerInput("alice", "a@x.io"))
	require.NoError(t, err)
	token := env.lastConfirmationToken(t)

	t.Run("garbage token", func(t *testing.T) {
		err := env.account.ConfirmEmail(ctx, "a@x.io", "garbage")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidLink))
	})

	t.Run("token for another email", func(t *testing.T) {
		err := env.account.ConfirmEmail(ctx, "b@x.io", token)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidLink))
	})

	t.Run("expired token", func(t *testing.T) {
		err := env.account.ConfirmEmail(ctx, "a@x.io", signExpiredConfirmation(t, "a@x.io"))
		assert.True(t, errors.Is(err, domainerrors.ErrConfirmationExpired))
		assert.Equal(t, domainerrors.KindTimeout, domainerrors.KindOf(err))
	})

	t.Run("consumed token", func(t *testing.T) {
		require.NoError(t, env.account.ConfirmEmail(ctx, "a@x.io", token))

		err := env.account.ConfirmEmail(ctx, "a@x.io", token)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidLink))
	})

	t.Run("consumed then expired token", func(t *testing.T) {
		err := env.account.ConfirmEmail(ctx, "a@x.io", signExpiredConfirmation(t, "a@x.io"))
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidLink))
		assert.False(t, errors.Is(err, domainerrors.ErrConfirmationExpired))
	})
}

// signExpiredConfirmation forges an authentic confirmation token that expired an hour ago.
func signExpiredConfirmation(t *testing.T, email string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Issuer:    "birdy",
		Audience:  jwt.ClaimStrings{"email-confirmation"},
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfirmSecret))
	require.NoError(t, err)

	return token
}

func TestAccountService_ResendConfirmation_RecoversExpiredLink(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	_, err := env.account.Register(ctx, registerInput("alice", "a@x.io"))
	require.NoError(t, err)

	err = env.account.ConfirmEmail(ctx, "a@x.io", signExpiredConfirmation(t, "a@x.io"))
	require.True(t, errors.Is(err, domainerrors.ErrConfirmationExpired))

	require.NoError(t, env.account.ResendConfirmation(ctx, "A@x.io"))
	require.Len(t, env.events, 2)
	assert.Equal(t, "a@x.io", env.events[1].Email)

	require.NoError(t, env.account.ConfirmEmail(ctx, "a@x.io", env.lastConfirmationToken(t)))

	_, err = env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: "A@X.IO", Password: testPassword})
	assert.NoError(t, err)
}

func TestAccountService_ResendConfirmation_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	env.seedUser(t, "carol", true)

	tests := []struct {
		name  string
		email string
		want  *domainerrors.BaseError
		kind  domainerrors.Kind
	}{
		{name: "unknown account", email: "nobody@birdy.test", want: domainerrors.ErrAccountNotFound, kind: domainerrors.KindArgument},
		{name: "already confirmed", email: "carol@birdy.test", want: domainerrors.ErrConflict, kind: domainerrors.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.account.ResendConfirmation(ctx, tt.email)
			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, tt.kind, domainerrors.KindOf(err))
		})
	}

	assert.Empty(t, env.events)
}

func TestAccountService_ResendConfirmation_PublishFailure(t *testing.T) {
	cfg := newTestConfig(0)
	store := memory.NewStore()
	confirmations, err := auth.NewConfirmationTokenService(cfg)
	require.NoError(t, err)

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishConfirmationRequested(mock.Anything, mock.Anything).
		Return(errors.New("broker down")).
		Twice()

	account := NewAccountService(AccountServiceParams{
		TxManager:          store,
		Hasher:             auth.NewBcryptHasher(cfg),
		SessionTokens:      auth.NewSessionTokenService(cfg),
		ConfirmationTokens: confirmations,
		Publisher:          publisher,
		Config:             cfg,
		Logger:             newDiscardLogger(),
	})

	_, err = account.Register(context.Background(), registerInput("alice", "a@x.io"))
	require.NoError(t, err)

	err = account.ResendConfirmation(context.Background(), "a@x.io")
	assert.ErrorContains(t, err, "broker down")
}

func TestAccountService_Authenticate_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	env.seedUser(t, "alice", true)
	env.seedUser(t, "carol", false)

	tests := []struct {
		name     string
		email    string
		password string
		want     *domainerrors.BaseError
		kind     domainerrors.Kind
	}{
		{name: "unknown login", email: "nobody@birdy.test", password: testPassword, want: domainerrors.ErrAccountNotFound, kind: domainerrors.KindArgument},
		{name: "unconfirmed with right secret", email: "carol@birdy.test", password: testPassword, want: domainerrors.ErrEmailNotConfirmed, kind: domainerrors.KindAuthentication},
		{name: "unconfirmed with wrong secret", email: "carol@birdy.test", password: "nope", want: domainerrors.ErrEmailNotConfirmed, kind: domainerrors.KindAuthentication},
		{name: "wrong secret", email: "alice@birdy.test", password: "nope", want: domainerrors.ErrInvalidCredentials, kind: domainerrors.KindAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: tt.email, Password: tt.password})
			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, tt.kind, domainerrors.KindOf(err))
		})
	}
}

func TestAccountService_Authenticate_MultipleSessions(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)

	first := env.login(t, alice)
	second := env.login(t, alice)
	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		userID, err := env.access.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, userID)
	}
}

func TestAccountService_Authenticate_SessionLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)

	first := env.login(t, alice)
	env.login(t, alice)

	_, err := env.account.Authenticate(ctx, &usecase.AuthenticateInput{Email: alice.Email, Password: testPassword})
	assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))

	require.NoError(t, env.account.TerminateSession(ctx, first, alice.ID))
	env.login(t, alice)
}

func TestAccountService_ChangePassword_Failures(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)
	token := env.login(t, alice)

	err := env.account.ChangePassword(ctx, alice.ID, &usecase.ChangePasswordInput{OldPassword: "wrong", NewPassword: "EvenStronger456!"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = env.account.ChangePassword(ctx, alice.ID, &usecase.ChangePasswordInput{OldPassword: testPassword, NewPassword: "weak"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	// Neither failure may revoke sessions.
	_, err = env.access.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestAccountService_TerminateSession(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)

	aliceFirst := env.login(t, alice)
	aliceSecond := env.login(t, alice)
	bobToken := env.login(t, bob)

	// A token scoped to another user is left untouched.
	require.NoError(t, env.account.TerminateSession(ctx, bobToken, alice.ID))
	_, err := env.access.ValidateToken(ctx, bobToken)
	require.NoError(t, err)

	require.NoError(t, env.account.TerminateSession(ctx, aliceFirst, alice.ID))
	_, err = env.access.ValidateToken(ctx, aliceFirst)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSession))
	_, err = env.access.ValidateToken(ctx, aliceSecond)
	assert.NoError(t, err)

	// Terminating twice succeeds.
	assert.NoError(t, env.account.TerminateSession(ctx, aliceFirst, alice.ID))
}

func TestAccountService_TerminateAllSessions(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)
	bob := env.seedUser(t, "bob", true)

	tokens := []string{env.login(t, alice), env.login(t, alice)}
	bobToken := env.login(t, bob)

	require.NoError(t, env.account.TerminateAllSessions(ctx, alice.ID))

	for _, token := range tokens {
		_, err := env.access.ValidateToken(ctx, token)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidSession))
	}
	_, err := env.access.ValidateToken(ctx, bobToken)
	assert.NoError(t, err)
}

func TestAccountService_ListSessions(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", true)

	_, err := env.account.Authenticate(ctx, &usecase.AuthenticateInput{
		Email:     alice.Email,
		Password:  testPassword,
		UserAgent: "birdy-ios/1.0",
		IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	env.login(t, alice)

	sessions, err := env.account.ListSessions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	agents := []string{sessions[0].UserAgent, sessions[1].UserAgent}
	assert.Contains(t, agents, "birdy-ios/1.0")
	for _, session := range sessions {
		assert.NotEqual(t, "", session.ID.String())
	}
}
