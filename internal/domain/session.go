package domain

import "time"

// Session is a server-side login session referenced by an opaque cookie
// token. Only the SHA-256 fingerprint of the token is stored.
type Session struct {
	ID                string
	UserID            string
	TokenHash         string
	TwoFactorVerified bool
	ExpiresAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Active reports whether the session is usable for protected requests:
// not expired and past any pending second-factor challenge.
func (s Session) Active(now time.Time) bool {
	return s.TwoFactorVerified && now.Before(s.ExpiresAt)
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
