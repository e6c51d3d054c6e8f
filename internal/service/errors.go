package service

import "errors"

// Sentinel errors surfaced to the HTTP boundary. Credential and reset
// token failures are deliberately generic so responses cannot be used to
// probe which accounts or tokens exist.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSessionMismatch    = errors.New("failed to update session")

	ErrInvalidTOTPCode   = errors.New("invalid verification code")
	ErrTwoFactorEnabled  = errors.New("two-factor authentication already enabled")
	ErrTwoFactorNotSetUp = errors.New("two-factor authentication not set up")

	ErrAccountExists = errors.New("an account with that email or username already exists")

	ErrInvalidResetToken = errors.New("invalid or expired token")

	ErrInvalidAmount       = errors.New("invalid payment amount")
	ErrInvalidPaymentState = errors.New("invalid payment state")
)
