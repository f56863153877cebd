package middleware

import (
	"strings"

	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the session token of a request to its user.
type AuthMiddleware struct {
	access usecase.AccessUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(access usecase.AccessUsecase) *AuthMiddleware {
	return &AuthMiddleware{access: access}
}

// Authenticate rejects requests without a live session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrInvalidSession.WithDetails("authorization header is missing")
		}

		token, found := strings.CutPrefix(authHeader, bearerPrefix)
		token = strings.TrimSpace(token)
		if !found || token == "" {
			return domainerrors.ErrInvalidSession.WithDetails("authorization header must carry a bearer token")
		}

		userID, err := m.access.ValidateToken(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetAuth(c, userID, token)

		return next(c)
	}
}
