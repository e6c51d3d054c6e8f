package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st, TOTPIssuer: "test"}

	t.Run("creates a user-role account", func(t *testing.T) {
		user, err := svc.Register(ctx, RegisterParams{
			Email:    "Eve@Example.COM",
			Username: "eve",
			Password: "a-long-password",
			Name:     "  Eve  ",
			Phone:    "555-0100",
		})
		require.NoError(t, err)
		require.Equal(t, "eve@example.com", user.Email)
		require.Equal(t, "Eve", user.Name)
		require.Equal(t, "user", user.Role)
		require.NotEqual(t, "a-long-password", user.PasswordHash)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Email:    "eve@example.com",
			Username: "eve2",
			Password: "a-long-password",
			Name:     "Eve Again",
		})
		require.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Email:    "other@example.com",
			Username: "eve",
			Password: "a-long-password",
			Name:     "Other Eve",
		})
		require.ErrorIs(t, err, ErrAccountExists)
	})
}

func TestProfileUpdates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st, TOTPIssuer: "test"}

	user, _ := seedUser(t, st, "frank", false)

	require.NoError(t, svc.UpdateProfile(ctx, user.ID, "Franklin", "555-0199"))
	require.NoError(t, svc.UpdateTheme(ctx, user.ID, true))

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Franklin", got.Name)
	require.Equal(t, "555-0199", got.Phone)
	require.True(t, got.DarkMode)
}

func TestTOTPEnrollment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st, TOTPIssuer: "test"}

	user, _ := seedUser(t, st, "grace", false)

	enrollment, err := svc.EnrollTOTP(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://")

	t.Run("pending enrollment does not enforce the factor", func(t *testing.T) {
		got, err := svc.GetUser(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, got.TwoFactorConfigured())
	})

	t.Run("invalid code does not enable", func(t *testing.T) {
		require.ErrorIs(t, svc.VerifyTOTP(ctx, user.ID, "000000"), ErrInvalidTOTPCode)
	})

	t.Run("valid code enables the factor", func(t *testing.T) {
		require.NoError(t, svc.VerifyTOTP(ctx, user.ID, totpCode(t, enrollment.Secret)))

		got, err := svc.GetUser(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, got.TwoFactorConfigured())
	})

	t.Run("re-enrollment is rejected once enabled", func(t *testing.T) {
		_, err := svc.EnrollTOTP(ctx, user.ID)
		require.ErrorIs(t, err, ErrTwoFactorEnabled)
	})
}

func TestVerifyTOTPWithoutEnrollment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st, TOTPIssuer: "test"}

	user, _ := seedUser(t, st, "heidi", false)
	require.ErrorIs(t, svc.VerifyTOTP(ctx, user.ID, "123456"), ErrTwoFactorNotSetUp)
}
