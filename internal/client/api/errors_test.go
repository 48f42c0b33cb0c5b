package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_MessageFallback(t *testing.T) {
	e := &Error{Status: 400}
	require.Equal(t, "fallback", e.Message("fallback"))

	e.Detail = "bad credentials"
	require.Equal(t, "bad credentials", e.Message("fallback"))
}

func TestIsHelpers(t *testing.T) {
	require.True(t, IsUnauthorized(&Error{Status: 401}))
	require.False(t, IsUnauthorized(&Error{Status: 403}))

	require.True(t, IsForbidden(&Error{Status: 403}))
	require.True(t, IsRateLimited(&Error{Status: 429}))
	require.True(t, IsVerificationRequired(&Error{Status: 403, VerificationRequired: true}))
	require.False(t, IsVerificationRequired(&Error{Status: 403}))
}

func TestIsHelpers_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", &Error{Status: 429, Detail: "slow down"})
	require.True(t, IsRateLimited(wrapped))

	apiErr, ok := AsError(wrapped)
	require.True(t, ok)
	require.Equal(t, "slow down", apiErr.Detail)
}

func TestIsHelpers_NonAPIError(t *testing.T) {
	err := errors.New("boom")
	require.False(t, IsUnauthorized(err))
	require.False(t, IsForbidden(err))
	require.False(t, IsRateLimited(err))
	require.False(t, IsVerificationRequired(err))

	_, ok := AsError(err)
	require.False(t, ok)
}
