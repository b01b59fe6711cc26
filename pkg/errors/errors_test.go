package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name  string
		err   *AppError
		kind  ErrorType
		check func(error) bool
	}{
		{"validation", NewValidationError("empty input"), ErrorTypeValidation, IsValidation},
		{"not found", NewNotFoundError("artist"), ErrorTypeNotFound, IsNotFound},
		{"unauthorized", NewUnauthorizedError(""), ErrorTypeUnauthorized, IsUnauthorized},
		{"session expired", NewSessionExpiredError(), ErrorTypeSessionExpired, IsSessionExpired},
		{"network", NewNetworkError("connection refused", nil), ErrorTypeNetwork, IsNetwork},
		{"timeout", NewTimeoutError("graph fetch"), ErrorTypeTimeout, IsTimeout},
		{"server", NewServerError("Artist not found."), ErrorTypeServer, IsServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Type)
			assert.True(t, tc.check(tc.err))
			assert.True(t, IsAppError(tc.err))
		})
	}
}

func TestWrapPreservesKind(t *testing.T) {
	err := Wrap(NewNotFoundError("snapshot"), "deleting snapshot")
	require.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "deleting snapshot")
}

func TestWrapPlainError(t *testing.T) {
	plain := fmt.Errorf("boom")
	err := Wrap(plain, "saving")
	require.True(t, IsType(err, ErrorTypeInternal))
	assert.ErrorIs(t, err, plain)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
}

func TestGetAppErrorThroughChain(t *testing.T) {
	inner := NewSessionExpiredError()
	wrapped := fmt.Errorf("save failed: %w", inner)
	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ErrorTypeSessionExpired, got.Type)
}
