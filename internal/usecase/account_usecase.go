package usecase

import (
	"context"

	"birdy/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	UniqueTag string `json:"unique_tag" validate:"required,min=3,max=64,excludesall= /?#"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
}

// AuthenticateInput defines the credentials and client metadata of a login.
type AuthenticateInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// ResendConfirmationInput names the account that needs a new confirmation link.
type ResendConfirmationInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordInput carries the old and new secrets.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *entity.User
}

// AuthenticateOutput carries the raw session token. It is the only place the
// raw token ever leaves the service.
type AuthenticateOutput struct {
	Token  string
	UserID int64
}

// AccountUsecase defines the account lifecycle operations.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	ConfirmEmail(ctx context.Context, email, token string) error
	ResendConfirmation(ctx context.Context, email string) error
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
	ChangePassword(ctx context.Context, userID int64, input *ChangePasswordInput) error
	TerminateSession(ctx context.Context, token string, userID int64) error
	TerminateAllSessions(ctx context.Context, userID int64) error
	ListSessions(ctx context.Context, userID int64) ([]*entity.SessionInfo, error)
}
