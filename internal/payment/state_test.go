package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateSignerRoundTrip(t *testing.T) {
	signer := &StateSigner{
		Secret: []byte("secret"),
		Issuer: "paydeck",
		TTL:    time.Hour,
	}

	token, err := signer.Sign("ref-123", "user-abc")
	require.NoError(t, err)

	reference, userID, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "ref-123", reference)
	require.Equal(t, "user-abc", userID)
}

func TestStateSignerRejects(t *testing.T) {
	signer := &StateSigner{
		Secret: []byte("secret"),
		Issuer: "paydeck",
		TTL:    time.Hour,
	}

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := signer.Verify("garbage")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		other := &StateSigner{Secret: []byte("different"), Issuer: "paydeck", TTL: time.Hour}
		token, err := other.Sign("ref-123", "user-abc")
		require.NoError(t, err)

		_, _, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := &StateSigner{Secret: []byte("secret"), Issuer: "someone-else", TTL: time.Hour}
		token, err := other.Sign("ref-123", "user-abc")
		require.NoError(t, err)

		_, _, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &StateSigner{Secret: []byte("secret"), Issuer: "paydeck", TTL: -time.Minute}
		token, err := expired.Sign("ref-123", "user-abc")
		require.NoError(t, err)

		_, _, err = signer.Verify(token)
		require.ErrorIs(t, err, ErrInvalidState)
	})
}
