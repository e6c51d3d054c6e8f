package service

import (
	"context"
	"testing"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st}

	user, _ := seedUser(t, st, "alice", false)

	t.Run("valid credentials create an active session", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice", testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)
		require.False(t, result.TwoFactorRequired)
		require.Equal(t, user.ID, result.User.ID)

		resolved, session, err := svc.ResolveSession(ctx, result.Token)
		require.NoError(t, err)
		require.Equal(t, user.ID, resolved.ID)
		require.True(t, session.TwoFactorVerified)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token is stored only as a fingerprint", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice", testPassword)
		require.NoError(t, err)

		_, err = st.Sessions().GetSessionByTokenHash(ctx, result.Token)
		require.Error(t, err)

		_, err = st.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(result.Token))
		require.NoError(t, err)
	})
}

func TestLoginWithTwoFactor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st}

	user, secret := seedUser(t, st, "bob", true)

	result, err := svc.Login(ctx, "bob", testPassword)
	require.NoError(t, err)
	require.True(t, result.TwoFactorRequired)

	t.Run("pending session does not resolve", func(t *testing.T) {
		_, _, err := svc.ResolveSession(ctx, result.Token)
		require.ErrorIs(t, err, ErrNoActiveSession)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		err := svc.CompleteTwoFactor(ctx, result.Token, user.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)
	})

	t.Run("mismatched user id is rejected", func(t *testing.T) {
		err := svc.CompleteTwoFactor(ctx, result.Token, "someone-else", totpCode(t, secret))
		require.ErrorIs(t, err, ErrSessionMismatch)
	})

	t.Run("missing cookie means no session", func(t *testing.T) {
		err := svc.CompleteTwoFactor(ctx, "", user.ID, totpCode(t, secret))
		require.ErrorIs(t, err, ErrNoActiveSession)
	})

	t.Run("valid code activates the session", func(t *testing.T) {
		require.NoError(t, svc.CompleteTwoFactor(ctx, result.Token, user.ID, totpCode(t, secret)))

		resolved, session, err := svc.ResolveSession(ctx, result.Token)
		require.NoError(t, err)
		require.Equal(t, user.ID, resolved.ID)
		require.True(t, session.TwoFactorVerified)
	})
}

func TestResolveSessionExpiry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st}

	user, _ := seedUser(t, st, "carol", false)

	token := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID:                idx.New().String(),
		UserID:            user.ID,
		TokenHash:         cryptox.FingerprintToken(token),
		TwoFactorVerified: true,
		ExpiresAt:         time.Now().UTC().Add(-time.Minute),
	}))

	_, _, err := svc.ResolveSession(ctx, token)
	require.ErrorIs(t, err, ErrNoActiveSession)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st}

	seedUser(t, st, "dave", false)

	result, err := svc.Login(ctx, "dave", testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))

	_, _, err = svc.ResolveSession(ctx, result.Token)
	require.ErrorIs(t, err, ErrNoActiveSession)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout(ctx, result.Token))
	require.NoError(t, svc.Logout(ctx, ""))
}
