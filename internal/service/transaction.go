package service

import (
	"context"
	"fmt"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TransactionService serves each user's payment history.
type TransactionService struct {
	Store store.Store
}

// TransactionPage is one page of a user's transaction history, newest
// first, with enough metadata to render pagination controls.
type TransactionPage struct {
	Transactions []domain.Transaction
	Page         int
	Limit        int
	Total        int64
	TotalPages   int
}

// List returns a page of the user's transactions. Out-of-range page and
// limit values are clamped rather than rejected.
func (s *TransactionService) List(ctx context.Context, userID string, page, limit int) (TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := s.Store.Transactions().CountUserTransactions(ctx, userID)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	transactions, err := s.Store.Transactions().ListUserTransactions(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return TransactionPage{
		Transactions: transactions,
		Page:         page,
		Limit:        limit,
		Total:        total,
		TotalPages:   totalPages,
	}, nil
}

// ListAll returns a page of every user's transactions, newest first.
// Callers are responsible for gating this to admin users.
func (s *TransactionService) ListAll(ctx context.Context, page, limit int) (TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := s.Store.Transactions().CountTransactions(ctx)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	transactions, err := s.Store.Transactions().ListTransactions(ctx, limit, (page-1)*limit)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	return TransactionPage{
		Transactions: transactions,
		Page:         page,
		Limit:        limit,
		Total:        total,
		TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}
