package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
)

type transactionsRepo struct {
	db dbtx
}

const transactionColumns = `id, user_id, reference, status, amount_cents, currency, paid_at, created_at, updated_at`

func scanTransaction(scan func(dest ...any) error) (domain.Transaction, error) {
	var (
		t      domain.Transaction
		paidAt sql.NullTime
	)
	err := scan(
		&t.ID, &t.UserID, &t.Reference, &t.Status,
		&t.AmountCents, &t.Currency, &paidAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	t.PaidAt = mapNullTimePtr(paidAt)
	return t, nil
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, reference, status, amount_cents, currency, paid_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Reference, t.Status,
		t.AmountCents, t.Currency, mapOptionalTime(t.PaidAt),
		now, now,
	)
	return mapConflict(err)
}

func (r *transactionsRepo) GetTransactionByReference(ctx context.Context, reference string) (domain.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE reference = ?`, reference).Scan)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	return t, nil
}

func (r *transactionsRepo) UpdateTransactionStatus(ctx context.Context, reference, status string, paidAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET status = ?, paid_at = ?, updated_at = ? WHERE reference = ?`,
		status, mapOptionalTime(paidAt), time.Now().UTC(), reference)
	return err
}

func (r *transactionsRepo) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) CountUserTransactions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}
