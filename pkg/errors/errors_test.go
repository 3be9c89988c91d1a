package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, ErrUnauthorized.Code},
		{http.StatusNotFound, ErrNotFound.Code},
		{http.StatusConflict, ErrConflict.Code},
		{http.StatusUnprocessableEntity, ErrRemote.Code},
		{http.StatusInternalServerError, ErrRemote.Code},
		{http.StatusServiceUnavailable, ErrUnavailable.Code},
	}
	for _, tc := range cases {
		err := FromStatus(tc.status, "boom")
		assert.Equal(t, tc.code, err.Code, "status %d", tc.status)
		assert.Equal(t, tc.status, err.Status)
		assert.Equal(t, "boom", err.Message)
		assert.True(t, IsRemote(err))
		assert.False(t, IsValidation(err))
	}
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("delete: %w", Clone(ErrBusy, "screen busy"))
	assert.True(t, stdErrors.Is(wrapped, ErrBusy))
	assert.False(t, stdErrors.Is(wrapped, ErrNotFound))
}

func TestIsValidation(t *testing.T) {
	err := Clone(ErrValidation, "Details is required")
	assert.True(t, IsValidation(err))
	assert.False(t, IsRemote(err))
	assert.False(t, IsValidation(stdErrors.New("plain")))
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(stdErrors.New("plain"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Nil(t, FromError(nil))
}
