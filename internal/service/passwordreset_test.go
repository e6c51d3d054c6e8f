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

func TestRequestReset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PasswordResetService{Store: st}

	user, _ := seedUser(t, st, "ivy", false)

	t.Run("unknown email yields no token and no error", func(t *testing.T) {
		token, err := svc.RequestReset(ctx, "stranger@example.com")
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("known email yields a verifiable token", func(t *testing.T) {
		token, err := svc.RequestReset(ctx, user.Email)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.NoError(t, svc.VerifyToken(ctx, token))
	})

	t.Run("email matching ignores case and whitespace", func(t *testing.T) {
		users := &UserService{Store: st}
		_, err := users.Register(ctx, RegisterParams{
			Email:    "Grace@Example.COM",
			Username: "grace",
			Password: testPassword,
			Name:     "Grace",
		})
		require.NoError(t, err)

		token, err := svc.RequestReset(ctx, "Grace@Example.COM")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.NoError(t, svc.VerifyToken(ctx, token))
	})

	t.Run("a new request replaces the previous token", func(t *testing.T) {
		first, err := svc.RequestReset(ctx, user.Email)
		require.NoError(t, err)

		second, err := svc.RequestReset(ctx, user.Email)
		require.NoError(t, err)

		require.ErrorIs(t, svc.VerifyToken(ctx, first), ErrInvalidResetToken)
		require.NoError(t, svc.VerifyToken(ctx, second))
	})
}

func TestVerifyTokenExpiry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PasswordResetService{Store: st}

	user, _ := seedUser(t, st, "judy", false)

	token := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, st.PasswordResets().ReplaceResetToken(ctx, domain.PasswordReset{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	require.ErrorIs(t, svc.VerifyToken(ctx, token), ErrInvalidResetToken)
	require.ErrorIs(t, svc.VerifyToken(ctx, "garbage"), ErrInvalidResetToken)
	require.ErrorIs(t, svc.VerifyToken(ctx, ""), ErrInvalidResetToken)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PasswordResetService{Store: st}
	auth := &AuthService{Store: st}

	user, _ := seedUser(t, st, "karl", false)

	// An established session that must not survive the reset.
	login, err := auth.Login(ctx, "karl", testPassword)
	require.NoError(t, err)

	token, err := svc.RequestReset(ctx, user.Email)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-password"))

	t.Run("new password works, old one does not", func(t *testing.T) {
		_, err := auth.Login(ctx, "karl", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = auth.Login(ctx, "karl", "brand-new-password")
		require.NoError(t, err)
	})

	t.Run("token is single use", func(t *testing.T) {
		require.ErrorIs(t, svc.ResetPassword(ctx, token, "another-password"), ErrInvalidResetToken)
	})

	t.Run("existing sessions are revoked", func(t *testing.T) {
		_, _, err := auth.ResolveSession(ctx, login.Token)
		require.ErrorIs(t, err, ErrNoActiveSession)
	})
}
