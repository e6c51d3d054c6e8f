package store

import (
	"context"
	"errors"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	PasswordResets() PasswordResets
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step operations that must be atomic
	// (e.g., consuming a reset token while updating the password).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during credential verification.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used by registration and the password reset flow.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name and phone and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, name, phone string) error

	// UpdateDarkMode sets the theme preference.
	UpdateDarkMode(ctx context.Context, userID string, darkMode bool) error

	// UpdatePasswordHash sets the password_hash (bcrypt) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateTOTPSecret stores a pending TOTP secret (empty string clears it).
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTOTP marks the second factor as verified (sets totp_enabled_at).
	EnableTOTP(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users. Used for admin seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by the fingerprint of its
	// opaque cookie token, regardless of expiry (callers check expiry).
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// MarkTwoFactorVerified flips two_factor_verified for the session
	// identified by token hash, but only when it belongs to userID.
	// Returns ErrNotFound when no row matches.
	MarkTwoFactorVerified(ctx context.Context, hash, userID string) error

	// DeleteSessionByTokenHash removes a session (logout).
	DeleteSessionByTokenHash(ctx context.Context, hash string) error

	// DeleteUserSessions bulk-invalidates all sessions for a user
	// (e.g., after a password reset).
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}

type PasswordResets interface {
	// ReplaceResetToken atomically replaces any live token for the user
	// with the given one (single upsert; preserves the one-live-token
	// invariant under concurrent requests).
	ReplaceResetToken(ctx context.Context, r domain.PasswordReset) error

	// GetResetByTokenHash returns the reset row by token fingerprint.
	GetResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error)

	// DeleteResetToken consumes a token after a successful reset.
	DeleteResetToken(ctx context.Context, id string) error

	// DeleteExpiredResetTokens is housekeeping.
	DeleteExpiredResetTokens(ctx context.Context) error
}

type Transactions interface {
	// CreateTransaction inserts a pending transaction row.
	CreateTransaction(ctx context.Context, t domain.Transaction) error

	// GetTransactionByReference fetches a transaction by its unique reference.
	GetTransactionByReference(ctx context.Context, reference string) (domain.Transaction, error)

	// UpdateTransactionStatus transitions a transaction after provider
	// verification. paidAt may be nil for failed payments.
	UpdateTransactionStatus(ctx context.Context, reference, status string, paidAt *time.Time) error

	// ListUserTransactions returns the user's transactions newest first.
	ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)

	// CountUserTransactions returns the total row count for pagination.
	CountUserTransactions(ctx context.Context, userID string) (int64, error)

	// ListTransactions returns transactions across all users, newest
	// first. Admin-only surface.
	ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error)

	// CountTransactions returns the total row count across all users.
	CountTransactions(ctx context.Context) (int64, error)
}
