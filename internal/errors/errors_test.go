package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct {
	op string
}

func (e timeoutError) Error() string { return e.op + " timed out" }

func TestWrap(t *testing.T) {
	t.Run("keeps the chain", func(t *testing.T) {
		wrapped := Wrap(ErrConflict, "creating user")
		require.Error(t, wrapped)
		assert.Equal(t, "creating user: conflict", wrapped.Error())
		assert.True(t, Is(wrapped, ErrConflict))
	})

	t.Run("nil in, nil out", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "creating user"))
	})
}

func TestWrapf(t *testing.T) {
	t.Run("formats and keeps the chain", func(t *testing.T) {
		wrapped := Wrapf(ErrNotFound, "user %q", "zuxer")
		require.Error(t, wrapped)
		assert.Equal(t, `user "zuxer": not found`, wrapped.Error())
		assert.True(t, Is(wrapped, ErrNotFound))
	})

	t.Run("nil in, nil out", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "user %q", "zuxer"))
	})
}

func TestIs(t *testing.T) {
	doubleWrapped := Wrap(Wrap(ErrRateLimited, "admission"), "pipeline")
	assert.True(t, Is(doubleWrapped, ErrRateLimited))
	assert.False(t, Is(doubleWrapped, ErrConflict))

	assert.False(t, Is(errors.New("rate limited"), ErrRateLimited),
		"matching by message instead of identity would be a bug")
}

func TestAs(t *testing.T) {
	wrapped := Wrap(timeoutError{op: "query"}, "loading feed")

	var target timeoutError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "query", target.op)

	assert.False(t, As(ErrForbidden, &target))
}

func TestNew(t *testing.T) {
	err := New("session revoked")
	require.Error(t, err)
	assert.Equal(t, "session revoked", err.Error())
}
