package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, username, name, phone, password_hash, role, dark_mode, totp_secret, totp_enabled, created_at, updated_at`

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u           domain.User
		totpSecret  sql.NullString
		totpEnabled sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.Name, &u.Phone,
		&u.PasswordHash, &u.Role, &u.DarkMode,
		&totpSecret, &totpEnabled,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.TOTPSecret = mapNullStringPtr(totpSecret)
	u.TOTPEnabled = mapNullTimePtr(totpEnabled)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, name, phone, password_hash, role, dark_mode, totp_secret, totp_enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.Name, u.Phone,
		u.PasswordHash, u.Role, u.DarkMode,
		mapOptionalString(u.TOTPSecret), mapOptionalTime(u.TOTPEnabled),
		now, now,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name, phone string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, phone = ?, updated_at = ? WHERE id = ?`,
		name, phone, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) UpdateDarkMode(ctx context.Context, userID string, darkMode bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET dark_mode = ?, updated_at = ? WHERE id = ?`,
		darkMode, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) UpdateTOTPSecret(ctx context.Context, userID string, secret string) error {
	var ns sql.NullString
	if secret != "" {
		ns = sql.NullString{String: secret, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = ?, totp_enabled = NULL, updated_at = ? WHERE id = ?`,
		ns, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) EnableTOTP(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_enabled = ?, updated_at = ? WHERE id = ?`,
		now, now, userID)
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
