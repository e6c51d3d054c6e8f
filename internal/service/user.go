package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/pquerna/otp/totp"
)

// UserService manages account registration, profile data and the
// two-factor enrollment flow.
type UserService struct {
	Store store.Store

	// TOTPIssuer is the issuer name shown in authenticator apps.
	TOTPIssuer string
}

// RegisterParams is the input for creating a new account.
type RegisterParams struct {
	Email    string
	Username string
	Password string
	Name     string
	Phone    string
}

// Register creates a new user account with the user role. Email and
// username collisions return ErrAccountExists.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (domain.User, error) {
	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		Username:     strings.TrimSpace(params.Username),
		Name:         strings.TrimSpace(params.Name),
		Phone:        strings.TrimSpace(params.Phone),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrAccountExists
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile changes the user's display name and phone number.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, phone string) error {
	return s.Store.Users().UpdateProfile(ctx, userID, strings.TrimSpace(name), strings.TrimSpace(phone))
}

// UpdateTheme persists the user's dark mode preference.
func (s *UserService) UpdateTheme(ctx context.Context, userID string, darkMode bool) error {
	return s.Store.Users().UpdateDarkMode(ctx, userID, darkMode)
}

// TOTPEnrollment carries the provisioning material for a pending
// two-factor setup. The secret is only shown once, at enrollment time.
type TOTPEnrollment struct {
	Secret string
	URL    string // otpauth:// provisioning URI for authenticator apps
}

// EnrollTOTP generates a fresh TOTP secret for the user and stores it
// in a pending state. The factor is not enforced until VerifyTOTP
// confirms the user's authenticator produces matching codes.
func (s *UserService) EnrollTOTP(ctx context.Context, userID string) (TOTPEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user.TwoFactorConfigured() {
		return TOTPEnrollment{}, ErrTwoFactorEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.TOTPIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to store totp secret: %w", err)
	}

	return TOTPEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyTOTP confirms a pending enrollment by validating a code from
// the user's authenticator, then marks the factor as enabled.
func (s *UserService) VerifyTOTP(ctx context.Context, userID, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.TwoFactorConfigured() {
		return ErrTwoFactorEnabled
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		return ErrTwoFactorNotSetUp
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableTOTP(ctx, userID); err != nil {
		return fmt.Errorf("failed to enable totp: %w", err)
	}

	return nil
}
