// Package handler contains the HTTP handlers for the application.
package handler

import (
	"strconv"

	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// tagRequest names another user by unique tag.
type tagRequest struct {
	UniqueTag string `json:"unique_tag" validate:"required"`
}

// bindAndValidate decodes the request body into input and runs its validate tags.
func bindAndValidate(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return errors.WithStack(c.Validate(input))
}

// currentUserID returns the user resolved by the auth middleware.
func currentUserID(c echo.Context) (int64, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return 0, domainerrors.ErrInvalidSession
	}

	return userID, nil
}

func chatIDParam(c echo.Context) (int64, error) {
	chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || chatID <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid chat id")
	}

	return chatID, nil
}

func dialogIDParam(c echo.Context) (uuid.UUID, error) {
	dialogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid dialog id")
	}

	return dialogID, nil
}
