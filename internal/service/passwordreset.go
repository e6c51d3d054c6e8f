package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
)

// DefaultResetTokenTTL is how long a password reset token stays valid.
const DefaultResetTokenTTL = time.Hour

// PasswordResetService owns the reset token ledger: issuing tokens,
// verifying them, and consuming them to set a new password.
type PasswordResetService struct {
	Store    store.Store
	TokenTTL time.Duration
}

// RequestReset issues a reset token for the account behind email.
// Requesting again replaces any live token for that account, so at most
// one token is ever valid per user.
//
// Unknown emails return ("", nil): callers must respond identically in
// both cases so the endpoint cannot be used to enumerate accounts.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	// Emails are stored lowercased at registration; match that here so
	// the address works however the user capitalizes it.
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	reset := domain.PasswordReset{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: time.Now().UTC().Add(s.tokenTTL()),
	}

	if err := s.Store.PasswordResets().ReplaceResetToken(ctx, reset); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

// VerifyToken reports whether token references a live reset entry.
// Unknown and expired tokens are indistinguishable to the caller.
func (s *PasswordResetService) VerifyToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	reset, err := s.Store.PasswordResets().GetResetByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}

	if !reset.Valid(time.Now()) {
		return ErrInvalidResetToken
	}

	return nil
}

// ResetPassword consumes a reset token and sets the account's password.
// The password update, token deletion and session revocation commit
// atomically; a token can never be redeemed twice.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		reset, err := tx.PasswordResets().GetResetByTokenHash(ctx, cryptox.FingerprintToken(token))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return fmt.Errorf("failed to load reset token: %w", err)
		}
		if !reset.Valid(time.Now()) {
			return ErrInvalidResetToken
		}

		if err := tx.Users().UpdatePasswordHash(ctx, reset.UserID, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.PasswordResets().DeleteResetToken(ctx, reset.ID); err != nil {
			return fmt.Errorf("failed to consume reset token: %w", err)
		}

		// Existing sessions were established under the old credential.
		if err := tx.Sessions().DeleteUserSessions(ctx, reset.UserID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}

		return nil
	})
}

func (s *PasswordResetService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultResetTokenTTL
}
