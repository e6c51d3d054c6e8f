package service

import (
	"context"
	"testing"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/internal/store/drivers/sqlite"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedUser inserts a user with the test password. When withTOTP is set
// the user gets an enabled TOTP factor and the secret is returned.
func seedUser(t *testing.T, st store.Store, username string, withTOTP bool) (domain.User, string) {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Email:        username + "@example.com",
		Username:     username,
		Name:         "Test " + username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	var secret string
	if withTOTP {
		key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: user.Email})
		require.NoError(t, err)
		secret = key.Secret()
		now := time.Now().UTC()
		user.TOTPSecret = &secret
		user.TOTPEnabled = &now
	}

	require.NoError(t, st.Users().CreateUser(ctx, user))
	return user, secret
}

func totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}
