package handler

import (
	"net/http"
	"strconv"
	"time"

	"birdy/internal/delivery/api/response"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DialogHandler serves 1:1 dialogs.
type DialogHandler struct {
	uc usecase.DialogUsecase
}

// NewDialogHandler is the constructor for DialogHandler, injected by Fx.
func NewDialogHandler(uc usecase.DialogUsecase) *DialogHandler {
	return &DialogHandler{uc: uc}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type messageResponse struct {
	ID       int64     `json:"id"`
	SenderID int64     `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

// GetDialogs lists the caller's dialogs.
func (h *DialogHandler) GetDialogs(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dialogs, err := h.uc.GetDialogs(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dialogs)
}

// StartDialog opens, or returns, the dialog with the friend in the body.
func (h *DialogHandler) StartDialog(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input tagRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	dialog, err := h.uc.StartDialog(c.Request().Context(), userID, input.UniqueTag)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"dialog_id":  dialog.ID,
		"created_at": dialog.CreatedAt,
	})
}

// SendMessage posts a message to :id.
func (h *DialogHandler) SendMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	dialogID, err := dialogIDParam(c)
	if err != nil {
		return err
	}

	var input sendMessageRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	message, err := h.uc.SendMessage(c.Request().Context(), userID, dialogID, input.Text)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, messageResponse{
		ID:       message.ID,
		SenderID: message.SenderID,
		Text:     message.Text,
		SentAt:   message.SentAt,
	})
}

// GetMessages pages through :id. Accepts limit and an RFC 3339 before cursor.
func (h *DialogHandler) GetMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	dialogID, err := dialogIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.GetMessagesInput
	if raw := c.QueryParam("limit"); raw != "" {
		if input.Limit, err = strconv.Atoi(raw); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("limit must be an integer")
		}
	}
	if raw := c.QueryParam("before"); raw != "" {
		if input.Before, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("before must be an RFC 3339 timestamp")
		}
	}

	messages, err := h.uc.GetMessages(c.Request().Context(), userID, dialogID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]messageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, messageResponse{
			ID:       message.ID,
			SenderID: message.SenderID,
			Text:     message.Text,
			SentAt:   message.SentAt,
		})
	}

	return response.Success(c, http.StatusOK, out)
}
