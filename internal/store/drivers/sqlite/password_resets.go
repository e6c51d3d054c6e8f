package sqlite

import (
	"context"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
)

type passwordResetsRepo struct {
	db dbtx
}

// ReplaceResetToken is a single upsert keyed on user_id, so two racing
// forgot-password requests cannot leave more than one live token.
func (r *passwordResetsRepo) ReplaceResetToken(ctx context.Context, reset domain.PasswordReset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_resets (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     id = excluded.id,
		     token_hash = excluded.token_hash,
		     expires_at = excluded.expires_at,
		     created_at = excluded.created_at`,
		reset.ID, reset.UserID, reset.TokenHash, reset.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

func (r *passwordResetsRepo) GetResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error) {
	var p domain.PasswordReset
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM password_resets WHERE token_hash = ?`, hash).
		Scan(&p.ID, &p.UserID, &p.TokenHash, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}
	return p, nil
}

func (r *passwordResetsRepo) DeleteResetToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE id = ?`, id)
	return err
}

func (r *passwordResetsRepo) DeleteExpiredResetTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE expires_at < ?`, time.Now().UTC())
	return err
}
