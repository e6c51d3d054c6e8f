package domain

import "time"

// Role values stored on a user row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	Phone        string
	PasswordHash string // bcrypt, cost 10
	Role         string
	DarkMode     bool
	TOTPSecret   *string    // base32 TOTP secret (nullable, set at enrollment)
	TOTPEnabled  *time.Time // when the second factor was verified and enabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TwoFactorConfigured reports whether logins for this user must pass
// through the PENDING_2FA state before becoming active.
func (u User) TwoFactorConfigured() bool {
	return u.TOTPEnabled != nil && u.TOTPSecret != nil && *u.TOTPSecret != ""
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
