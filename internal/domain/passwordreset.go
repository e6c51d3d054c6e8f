package domain

import "time"

// PasswordReset is a single-use, time-limited credential allowing a
// password change without the old password. At most one live row exists
// per user (UNIQUE(user_id) in the schema; replacement is an upsert).
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Valid reports whether the token may still be redeemed.
func (p PasswordReset) Valid(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}
