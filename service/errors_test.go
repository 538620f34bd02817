package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", ErrNotAuthorized)
	assert.ErrorIs(t, wrapped, ErrForbidden)
	assert.ErrorIs(t, wrapped, ErrNotAuthorized)
	assert.NotErrorIs(t, wrapped, ErrNotFound)

	var se *Error
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "not authorized", se.Message())

	cause := errors.New("dial tcp: refused")
	up := &Error{Kind: ErrUpstream, Msg: "server error", Cause: cause}
	assert.ErrorIs(t, up, ErrUpstream)
	assert.ErrorIs(t, up, cause)
	assert.Equal(t, "server error", up.Message())
	assert.Contains(t, up.Error(), "refused")

	assert.ErrorIs(t, Invalid("bad date"), ErrBadRequest)
	assert.ErrorIs(t, ErrBadLogin, ErrInvalidCredentials)
	assert.ErrorIs(t, ErrUserExists, ErrConflict)
}
