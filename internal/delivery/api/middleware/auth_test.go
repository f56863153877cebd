package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"
	mockUsecase "birdy/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runAuth(t *testing.T, m *AuthMiddleware, header string) (echo.Context, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := m.Authenticate(func(echo.Context) error {
		called = true

		return nil
	})(c)

	return c, called, err
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	access := mockUsecase.NewMockAccessUsecase(t)
	access.EXPECT().ValidateToken(mock.Anything, "good-token").Return(int64(7), nil).Once()

	c, called, err := runAuth(t, NewAuthMiddleware(access), "Bearer good-token")
	require.NoError(t, err)
	assert.True(t, called)

	userID, ok := deliverycontext.GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "good-token", deliverycontext.GetSessionToken(c))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	access := mockUsecase.NewMockAccessUsecase(t)
	access.EXPECT().ValidateToken(mock.Anything, "revoked").Return(int64(0), domainerrors.ErrInvalidSession).Once()

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer revoked"} {
		_, called, err := runAuth(t, NewAuthMiddleware(access), header)
		assert.False(t, called, "header %q", header)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidSession), "header %q", header)
	}
}
