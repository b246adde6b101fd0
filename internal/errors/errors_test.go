package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{"validation", ErrValidation, http.StatusBadRequest, MsgMissingFields, "MISSING_FIELDS"},
		{"conflict", ErrConflict, http.StatusBadRequest, MsgMailAlreadyLinked, "MAIL_ALREADY_LINKED"},
		{"not found", ErrNotFound, http.StatusBadRequest, MsgUserNotFound, "USER_NOT_FOUND"},
		{"wrong password", ErrAuth, http.StatusBadRequest, MsgIncorrectPassword, "INCORRECT_PASSWORD"},
		{"wrapped conflict", fmt.Errorf("create user: %w", ErrConflict), http.StatusBadRequest, MsgMailAlreadyLinked, "MAIL_ALREADY_LINKED"},
		{"user creation", fmt.Errorf("%w: %w", ErrUserCreation, errors.New("conn reset")), http.StatusInternalServerError, MsgUserCreation, "USER_CREATION_FAILED"},
		{"internal with timeout", fmt.Errorf("%w: find: %w", ErrInternal, context.DeadlineExceeded), http.StatusInternalServerError, MsgInternal, "INTERNAL_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, MsgInternal, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, ErrorResponse{Error: tt.wantMsg, Code: tt.wantCode}, httpErr.ToErrorResponse())
		})
	}
}

func TestIsInternal(t *testing.T) {
	assert.False(t, IsInternal(ErrAuth))
	assert.True(t, IsInternal(ErrInternal))
	assert.True(t, IsInternal(errors.New("driver: bad connection")))
}

func TestMapErrorToHTTP_DoesNotLeakCause(t *testing.T) {
	err := fmt.Errorf("%w: find user: %w", ErrInternal, errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.NotContains(t, MapErrorToHTTP(err).Message, "10.0.0.1")
}
