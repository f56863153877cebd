package handler

import (
	"net/http"

	"birdy/internal/delivery/api/response"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FriendHandler serves friend requests and friend lists.
type FriendHandler struct {
	uc usecase.FriendUsecase
}

// NewFriendHandler is the constructor for FriendHandler, injected by Fx.
func NewFriendHandler(uc usecase.FriendUsecase) *FriendHandler {
	return &FriendHandler{uc: uc}
}

// ListFriends returns the caller's accepted friends.
func (h *FriendHandler) ListFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tags, err := h.uc.ListFriends(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tags)
}

// ListFriendRequests returns the requests waiting for the caller.
func (h *FriendHandler) ListFriendRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tags, err := h.uc.ListFriendRequests(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tags)
}

// SendFriendRequest asks the user in the body to become a friend.
func (h *FriendHandler) SendFriendRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input tagRequest
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	if err := h.uc.SendFriendRequest(c.Request().Context(), userID, input.UniqueTag); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "Friend request sent")
}

// AcceptFriendRequest accepts the request sent by :tag.
func (h *FriendHandler) AcceptFriendRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.AcceptFriendRequest(c.Request().Context(), userID, c.Param("tag")); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Friend request accepted")
}
