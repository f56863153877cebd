package errors

import (
	"net/http"
	"testing"

	"birdy/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain sentinel", err: ErrInvalidSession, want: KindAuthentication},
		{name: "wrapped twice", err: errors.Wrap(ErrDuplicateTag.WrapMessage("tag taken"), "register"), want: KindDuplicateTag},
		{name: "with details", err: ErrInvalidLink.WithDetails("email mismatch"), want: KindArgument},
		{name: "timeout", err: errors.WithStack(ErrConfirmationExpired), want: KindTimeout},
		{name: "database failure", err: NewDatabaseExecuteError(errors.New("boom"), "insert"), want: KindUnexpected},
		{name: "unclassified", err: errors.New("nil pointer"), want: KindUnexpected},
		{name: "nil", err: nil, want: KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestBaseError_IsMatchesDetailedCopies(t *testing.T) {
	detailed := ErrInvalidLink.WithDetails("token signature invalid")

	assert.ErrorIs(t, errors.Wrap(detailed, "confirm"), ErrInvalidLink)
	assert.NotErrorIs(t, detailed, ErrAccountNotFound)
	assert.Equal(t, "token signature invalid", detailed.Details())
}

func TestBoundaryCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode())
	assert.Equal(t, http.StatusNotFound, ErrAccountNotFound.HTTPCode())
	assert.Equal(t, http.StatusBadRequest, ErrInvalidLink.HTTPCode())
	assert.Equal(t, http.StatusConflict, ErrDuplicateAccount.HTTPCode())
	assert.Equal(t, http.StatusForbidden, ErrDuplicateTag.HTTPCode())
	assert.Equal(t, http.StatusForbidden, ErrInsufficientRights.HTTPCode())
	assert.Equal(t, http.StatusForbidden, ErrConfirmationExpired.HTTPCode())
	assert.Equal(t, "TIMEOUT", ErrConfirmationExpired.ErrorCode())
}
