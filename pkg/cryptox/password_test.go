package cryptox_test

import (
	"strings"
	"testing"

	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$"))
	require.NotContains(t, hash, "hunter2hunter2")

	require.NoError(t, cryptox.VerifyPassword("hunter2hunter2", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong", hash), cryptox.ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestGeneratePassword(t *testing.T) {
	a, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	b, err := cryptox.GeneratePassword()
	require.NoError(t, err)

	require.Len(t, a, 12)
	require.NotEqual(t, a, b)
}
