package handler

import (
	"net/http"

	"birdy/internal/delivery/api/response"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves profile lookups.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetUserInfo returns the profile behind :tag.
func (h *UserHandler) GetUserInfo(c echo.Context) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	info, err := h.uc.GetUserInfo(c.Request().Context(), viewerID, c.Param("tag"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info)
}

// GetInviteQRCode returns the caller's friend invite as a PNG.
func (h *UserHandler) GetInviteQRCode(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.GetInviteQRCode(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.PNG(c, png)
}
