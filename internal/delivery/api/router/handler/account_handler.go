package handler

import (
	"net/http"
	"time"

	"birdy/internal/delivery/api/response"
	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler serves registration, login and session management.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

type accountResponse struct {
	ID        int64     `json:"id"`
	UniqueTag string    `json:"unique_tag"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type authenticateResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// Register creates an unconfirmed account and triggers the confirmation email.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	user := output.User

	return response.Success(c, http.StatusCreated, accountResponse{
		ID:        user.ID,
		UniqueTag: user.UniqueTag,
		Email:     user.Email,
		Name:      user.Name,
		Status:    user.Status.String(),
		CreatedAt: user.CreatedAt,
	})
}

// ConfirmEmail handles the link sent by email.
func (h *AccountHandler) ConfirmEmail(c echo.Context) error {
	email := c.QueryParam("email")
	token := c.QueryParam("token")
	if email == "" || token == "" {
		return domainerrors.ErrInvalidLink.WithDetails("email and token are required")
	}

	if err := h.uc.ConfirmEmail(c.Request().Context(), email, token); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Email confirmed")
}

// ResendConfirmation sends a new confirmation link to an unconfirmed account.
func (h *AccountHandler) ResendConfirmation(c echo.Context) error {
	var input usecase.ResendConfirmationInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.uc.ResendConfirmation(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusAccepted, "Confirmation link sent")
}

// Authenticate exchanges credentials for a session token.
func (h *AccountHandler) Authenticate(c echo.Context) error {
	var input usecase.AuthenticateInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	input.UserAgent = c.Request().UserAgent()
	input.IPAddress = c.RealIP()

	output, err := h.uc.Authenticate(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, authenticateResponse{Token: output.Token, UserID: output.UserID})
}

// ChangePassword replaces the caller's password and signs out every session.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input usecase.ChangePasswordInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Password changed, all sessions were terminated")
}

// Logout terminates the session the request was made with.
func (h *AccountHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.TerminateSession(c.Request().Context(), deliverycontext.GetSessionToken(c), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Successfully logged out")
}

// LogoutAll terminates every session of the caller.
func (h *AccountHandler) LogoutAll(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.TerminateAllSessions(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "All sessions terminated")
}

// ListSessions lists the caller's active sessions without token material.
func (h *AccountHandler) ListSessions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.uc.ListSessions(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessions)
}
