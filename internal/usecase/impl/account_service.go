package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"birdy/config"
	deliverycontext "birdy/internal/delivery/context"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
	"birdy/internal/domain/service"
	"birdy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultConfirmationURL = "http://localhost:8080/app/confirm"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager          repository.TransactionManager
	hasher             service.PasswordHasher
	sessionTokens      service.SessionTokenService
	confirmationTokens service.ConfirmationTokenService
	publisher          service.EventPublisher
	maxActiveSessions  int
	confirmationURL    string
	logger             *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager          repository.TransactionManager
	Hasher             service.PasswordHasher
	SessionTokens      service.SessionTokenService
	ConfirmationTokens service.ConfirmationTokenService
	Publisher          service.EventPublisher
	Config             *config.Config
	Logger             *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	maxActiveSessions := 0
	confirmationURL := defaultConfirmationURL
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
		if params.Config.Auth.ConfirmationURL != "" {
			confirmationURL = params.Config.Auth.ConfirmationURL
		}
	}

	return &accountService{
		txManager:          params.TxManager,
		hasher:             params.Hasher,
		sessionTokens:      params.SessionTokens,
		confirmationTokens: params.ConfirmationTokens,
		publisher:          params.Publisher,
		maxActiveSessions:  maxActiveSessions,
		confirmationURL:    confirmationURL,
		logger:             params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail folds case variants of one mailbox onto a single identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unconfirmed account and requests a confirmation email.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("uniqueTag", input.UniqueTag), slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		UniqueTag:    input.UniqueTag,
		Email:        email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		Status:       entity.UserStatusUnconfirmed,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureAbsent(ctx, userRepo.FindByUniqueTag, input.UniqueTag, domainerrors.ErrDuplicateTag); err != nil {
			return err
		}
		if err := ensureAbsent(ctx, userRepo.FindByEmail, email, domainerrors.ErrDuplicateAccount); err != nil {
			return err
		}

		return errors.Wrap(userRepo.Create(ctx, newUser), "failed to create user during registration")
	})
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	// The account is already committed, and a new link can be requested later.
	if err := srv.requestConfirmation(ctx, newUser); err != nil {
		srv.log(ctx).Error("Failed to request confirmation", slog.Int64("userID", newUser.ID), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// ensureAbsent fails with conflictErr when lookup finds a record for key.
func ensureAbsent(
	ctx context.Context,
	lookup func(context.Context, string) (*entity.User, error),
	key string,
	conflictErr *domainerrors.BaseError,
) error {
	_, err := lookup(ctx, key)
	if err == nil {
		return conflictErr
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}

	return errors.Wrap(err, "failed to check existing account")
}

// requestConfirmation issues a fresh link and publishes the confirmation event.
func (srv *accountService) requestConfirmation(ctx context.Context, user *entity.User) error {
	token, expiresAt, err := srv.confirmationTokens.Issue(user.Email)
	if err != nil {
		return errors.Wrap(err, "failed to issue confirmation token")
	}

	event := &service.ConfirmationRequestedEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		Email:      user.Email,
		UniqueTag:  user.UniqueTag,
		ConfirmURL: srv.buildConfirmURL(user.Email, token),
		ExpiresAt:  expiresAt,
	}

	return errors.Wrap(srv.publisher.PublishConfirmationRequested(ctx, event), "failed to publish confirmation event")
}

// ResendConfirmation issues a new confirmation link for an unconfirmed account.
func (srv *accountService) ResendConfirmation(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user for confirmation")
		}
		if found.IsConfirmed() {
			return domainerrors.ErrConflict.WithDetails("email is already confirmed")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Confirmation resend rejected", slog.String("email", email), slog.Any("error", err))

		return errors.Wrap(err, "failed to resend confirmation")
	}

	if err := srv.requestConfirmation(ctx, user); err != nil {
		return err
	}

	srv.log(ctx).Info("Confirmation link resent", slog.Int64("userID", user.ID))

	return nil
}

func (srv *accountService) buildConfirmURL(email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)

	return srv.confirmationURL + "?" + query.Encode()
}

// ConfirmEmail marks the account as confirmed when the link is authentic and
// fresh. A link for an already confirmed account is invalid even once expired.
func (srv *accountService) ConfirmEmail(ctx context.Context, email, token string) error {
	email = normalizeEmail(email)

	verifyErr := srv.confirmationTokens.Verify(email, token)
	if verifyErr != nil && !errors.Is(verifyErr, domainerrors.ErrConfirmationExpired) {
		srv.log(ctx).Warn("Confirmation link rejected", slog.String("email", email), slog.Any("error", verifyErr))

		return errors.Wrap(verifyErr, "failed to verify confirmation token")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrInvalidLink.WithDetails("no account for this email")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user for confirmation")
		}

		if user.IsConfirmed() {
			return domainerrors.ErrInvalidLink.WithDetails("link was already used")
		}
		if verifyErr != nil {
			return verifyErr
		}

		user.Status = entity.UserStatusConfirmed
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to confirm user")
		}

		srv.log(ctx).Info("Email confirmed", slog.Int64("userID", user.ID))

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Confirmation link rejected", slog.String("email", email), slog.Any("error", err))

		return errors.Wrap(err, "failed to confirm email")
	}

	return nil
}

// Authenticate verifies the credentials and opens a new session.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	var output *usecase.AuthenticateOutput
	email := normalizeEmail(input.Email)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		if !user.IsConfirmed() {
			return domainerrors.ErrEmailNotConfirmed
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		sessionRepo := repoFactory.SessionRepo()
		if err := srv.enforceSessionLimit(ctx, sessionRepo, user.ID); err != nil {
			return err
		}

		token, err := srv.sessionTokens.Generate()
		if err != nil {
			return errors.Wrap(err, "failed to generate session token")
		}

		session := &entity.Session{
			UserID:    user.ID,
			TokenHash: srv.sessionTokens.HashToken(token),
			UserAgent: input.UserAgent,
			IPAddress: input.IPAddress,
		}
		if err := sessionRepo.Create(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}

		output = &usecase.AuthenticateOutput{Token: token, UserID: user.ID}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Authentication failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to authenticate")
	}

	srv.log(ctx).Info("User authenticated", slog.Int64("userID", output.UserID))

	return output, nil
}

func (srv *accountService) enforceSessionLimit(ctx context.Context, sessionRepo repository.SessionRepository, userID int64) error {
	if srv.maxActiveSessions <= 0 {
		return nil
	}

	count, err := sessionRepo.CountByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to count active sessions")
	}
	if count >= srv.maxActiveSessions {
		return domainerrors.ErrSessionLimitExceeded
	}

	return nil
}

// ChangePassword replaces the credential and revokes every session of the user.
func (srv *accountService) ChangePassword(ctx context.Context, userID int64, input *usecase.ChangePasswordInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "old password does not match")
		}

		if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
			return errors.Wrap(err, "new password does not meet security requirements")
		}

		hashedPassword, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		user.PasswordHash = hashedPassword
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return errors.Wrap(repoFactory.SessionRepo().DeleteByUserID(ctx, userID), "failed to revoke sessions")
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed, all sessions revoked", slog.Int64("userID", userID))

	return nil
}

// TerminateSession deletes the session matching token for userID. Deleting an
// already missing session succeeds.
func (srv *accountService) TerminateSession(ctx context.Context, token string, userID int64) error {
	tokenHash := srv.sessionTokens.HashToken(token)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.SessionRepo().DeleteByTokenHash(ctx, userID, tokenHash)
		if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
			return errors.Wrap(err, "failed to delete session")
		}

		return nil
	})
}

// TerminateAllSessions deletes every session of userID.
func (srv *accountService) TerminateAllSessions(ctx context.Context, userID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete sessions")
	}

	srv.log(ctx).Info("All sessions terminated", slog.Int64("userID", userID))

	return nil
}

// ListSessions returns the user's sessions without token material.
func (srv *accountService) ListSessions(ctx context.Context, userID int64) ([]*entity.SessionInfo, error) {
	var infos []*entity.SessionInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions, err := repoFactory.SessionRepo().FindByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list sessions")
		}

		infos = make([]*entity.SessionInfo, 0, len(sessions))
		for _, session := range sessions {
			infos = append(infos, session.Info())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return infos, nil
}
