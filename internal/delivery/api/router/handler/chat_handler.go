package handler

import (
	"net/http"

	"birdy/internal/delivery/api/response"
	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler serves group chat management.
type ChatHandler struct {
	uc usecase.ChatUsecase
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type createChatRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type memberStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=member moderator"`
}

// CreateChat creates a chat owned by the caller.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input createChatRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	chat, err := h.uc.CreateChat(c.Request().Context(), userID, input.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"id":         chat.ID,
		"name":       chat.Name,
		"created_at": chat.CreatedAt,
	})
}

// ListChatMembers lists the members of :id.
func (h *ChatHandler) ListChatMembers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	members, err := h.uc.ListChatMembers(c.Request().Context(), userID, chatID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, members)
}

// AddChatMember adds the friend named in the body to :id.
func (h *ChatHandler) AddChatMember(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	var input tagRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.uc.AddChatMember(c.Request().Context(), userID, chatID, input.UniqueTag); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "Chat member added")
}

// SetChatMemberStatus changes the rank of :tag in :id.
func (h *ChatHandler) SetChatMemberStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(c)
	if err != nil {
		return err
	}

	var input memberStatusRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	status, err := entity.ParseChatStatus(input.Status)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := h.uc.SetChatMemberStatus(c.Request().Context(), userID, chatID, c.Param("tag"), status); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Chat member status updated")
}
