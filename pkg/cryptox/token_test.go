package cryptox_test

import (
	"testing"

	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	b, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestFingerprintToken(t *testing.T) {
	token := cryptox.MustGenerateToken(cryptox.TokenSize256)

	fp := cryptox.FingerprintToken(token)
	require.NotEqual(t, token, fp)

	// Fingerprinting is deterministic so stored hashes stay matchable
	require.Equal(t, fp, cryptox.FingerprintToken(token))
	require.NotEqual(t, fp, cryptox.FingerprintToken(token+"x"))
}
