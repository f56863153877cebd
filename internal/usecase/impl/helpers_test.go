package impl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"birdy/config"
	"birdy/internal/domain/entity"
	"birdy/internal/domain/repository"
	"birdy/internal/domain/service"
	"birdy/internal/infra/auth"
	"birdy/internal/infra/persistence/memory"
	"birdy/internal/infra/qrcode"
	mockService "birdy/internal/mocks/service"
	"birdy/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword      = "StrongPass123!"
	testConfirmSecret = "test-confirmation-secret"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        bcrypt.MinCost,
			MaxActiveSessions: maxActiveSessions,
			ConfirmationTTL:   time.Hour,
			ConfirmationURL:   "http://birdy.test/app/confirm",
		},
	}
	cfg.SecretKey.Confirmation = testConfirmSecret

	return cfg
}

// testEnv wires every service against one in-memory store.
type testEnv struct {
	store     *memory.Store
	hasher    service.PasswordHasher
	tokens    service.SessionTokenService
	publisher *mockService.MockEventPublisher

	access  usecase.AccessUsecase
	account usecase.AccountUsecase
	friends usecase.FriendUsecase
	chats   usecase.ChatUsecase
	dialogs usecase.DialogUsecase
	users   usecase.UserUsecase

	mu     sync.Mutex
	events []*service.ConfirmationRequestedEvent
}

func newTestEnv(t *testing.T, maxActiveSessions int) *testEnv {
	t.Helper()

	cfg := newTestConfig(maxActiveSessions)
	logger := newDiscardLogger()

	confirmations, err := auth.NewConfirmationTokenService(cfg)
	require.NoError(t, err)

	env := &testEnv{
		store:     memory.NewStore(),
		hasher:    auth.NewBcryptHasher(cfg),
		tokens:    auth.NewSessionTokenService(cfg),
		publisher: mockService.NewMockEventPublisher(t),
	}

	env.publisher.EXPECT().
		PublishConfirmationRequested(mock.Anything, mock.Anything).
		Run(func(_ context.Context, event *service.ConfirmationRequestedEvent) {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.events = append(env.events, event)
		}).
		Return(nil).
		Maybe()

	env.access = NewAccessService(AccessServiceParams{
		TxManager:     env.store,
		SessionTokens: env.tokens,
		Logger:        logger,
	})
	env.account = NewAccountService(AccountServiceParams{
		TxManager:          env.store,
		Hasher:             env.hasher,
		SessionTokens:      env.tokens,
		ConfirmationTokens: confirmations,
		Publisher:          env.publisher,
		Config:             cfg,
		Logger:             logger,
	})
	env.friends = NewFriendService(FriendServiceParams{TxManager: env.store, Logger: logger})
	env.chats = NewChatService(ChatServiceParams{TxManager: env.store, Logger: logger})
	env.dialogs = NewDialogService(DialogServiceParams{TxManager: env.store, Logger: logger})
	env.users = NewUserService(UserServiceParams{
		TxManager: env.store,
		QRService: qrcode.NewQRCodeService(nil),
		Logger:    logger,
	})

	return env
}

// lastConfirmationToken extracts the token from the newest published link.
func (env *testEnv) lastConfirmationToken(t *testing.T) string {
	t.Helper()

	env.mu.Lock()
	defer env.mu.Unlock()
	require.NotEmpty(t, env.events)

	link, err := url.Parse(env.events[len(env.events)-1].ConfirmURL)
	require.NoError(t, err)

	return link.Query().Get("token")
}

// seedUser stores an account directly, skipping the registration flow.
func (env *testEnv) seedUser(t *testing.T, tag string, confirmed bool) *entity.User {
	t.Helper()

	hash, err := env.hasher.Hash(testPassword)
	require.NoError(t, err)

	user := &entity.User{
		UniqueTag:    tag,
		Email:        tag + "@birdy.test",
		Name:         tag,
		PasswordHash: hash,
	}
	if confirmed {
		user.Status = entity.UserStatusConfirmed
	}

	require.NoError(t, env.store.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(context.Background(), user)
	}))

	return user
}

// seedEdge stores a friend edge as (owner, target).
func (env *testEnv) seedEdge(t *testing.T, owner, target *entity.User, accepted bool) {
	t.Helper()

	require.NoError(t, env.store.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.FriendRepo().Create(context.Background(), &entity.FriendEdge{
			OwnerID:         owner.ID,
			TargetID:        target.ID,
			RequestAccepted: accepted,
		})
	}))
}

// login authenticates a seeded user and returns the raw token.
func (env *testEnv) login(t *testing.T, user *entity.User) string {
	t.Helper()

	out, err := env.account.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Email:    user.Email,
		Password: testPassword,
	})
	require.NoError(t, err)

	return out.Token
}
