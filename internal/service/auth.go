package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/pquerna/otp/totp"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt verification (enumeration resistance).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService owns the session lifecycle: credential verification,
// session creation, second-factor completion, resolution and logout.
type AuthService struct {
	Store      store.Store
	SessionTTL time.Duration
}

// LoginResult carries the outcome of a successful credential check.
type LoginResult struct {
	User  domain.User
	Token string // opaque session token, sent to the client as a cookie

	// TwoFactorRequired is true when the session was created in the
	// PENDING_2FA state and must be completed before it is usable.
	TwoFactorRequired bool
}

// Login verifies the username/password pair and creates a session.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		User:              user,
		Token:             token,
		TwoFactorRequired: user.TwoFactorConfigured(),
	}, nil
}

// StartSession creates a fully verified session for a user without a
// credential check. Used after registration to log the new account in.
func (s *AuthService) StartSession(ctx context.Context, user domain.User) (string, error) {
	return s.createSession(ctx, user)
}

// createSession issues an opaque token and persists its fingerprint.
// Sessions begin in PENDING_2FA when the user has TOTP enabled.
func (s *AuthService) createSession(ctx context.Context, user domain.User) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := domain.Session{
		ID:                idx.New().String(),
		UserID:            user.ID,
		TokenHash:         cryptox.FingerprintToken(token),
		TwoFactorVerified: !user.TwoFactorConfigured(),
		ExpiresAt:         time.Now().UTC().Add(s.sessionTTL()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// CompleteTwoFactor validates a TOTP code for a pending session and
// transitions it to ACTIVE. The session must belong to userID.
func (s *AuthService) CompleteTwoFactor(ctx context.Context, token, userID, code string) error {
	if token == "" {
		return ErrNoActiveSession
	}

	hash := cryptox.FingerprintToken(token)
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoActiveSession
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(time.Now()) {
		return ErrNoActiveSession
	}
	if session.UserID != userID {
		return ErrSessionMismatch
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		return ErrTwoFactorNotSetUp
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Sessions().MarkTwoFactorVerified(ctx, hash, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionMismatch
		}
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// ResolveSession maps a session cookie token to its authenticated user.
// Pending-2FA and expired sessions resolve to ErrNoActiveSession; the
// auth status endpoint reports those as unauthenticated.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (domain.User, domain.Session, error) {
	if token == "" {
		return domain.User{}, domain.Session{}, ErrNoActiveSession
	}

	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Session{}, ErrNoActiveSession
		}
		return domain.User{}, domain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	if !session.Active(time.Now()) {
		return domain.User{}, domain.Session{}, ErrNoActiveSession
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Session{}, ErrNoActiveSession
		}
		return domain.User{}, domain.Session{}, fmt.Errorf("failed to load user: %w", err)
	}

	return user, session, nil
}

// Logout invalidates the session referenced by the token. Deleting an
// already-gone session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}
