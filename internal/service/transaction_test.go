package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedTransactions(t *testing.T, st store.Store, userID string, n int) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < n; i++ {
		require.NoError(t, st.Transactions().CreateTransaction(ctx, domain.Transaction{
			ID:          idx.New().String(),
			UserID:      userID,
			Reference:   uuid.NewString(),
			Status:      domain.TransactionPending,
			AmountCents: int64(1000 * (i + 1)),
			Currency:    "USD",
		}))
	}
}

func TestTransactionListScoping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TransactionService{Store: st}

	alice, _ := seedUser(t, st, "alice", false)
	bob, _ := seedUser(t, st, "bob", false)

	seedTransactions(t, st, alice.ID, 3)
	seedTransactions(t, st, bob.ID, 2)

	page, err := svc.List(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Transactions, 3)
	require.EqualValues(t, 3, page.Total)

	for _, tx := range page.Transactions {
		require.Equal(t, alice.ID, tx.UserID)
	}

	t.Run("user with no transactions gets an empty page", func(t *testing.T) {
		carol, _ := seedUser(t, st, "carol", false)
		page, err := svc.List(ctx, carol.ID, 1, 10)
		require.NoError(t, err)
		require.Empty(t, page.Transactions)
		require.EqualValues(t, 0, page.Total)
	})
}

func TestTransactionListPagination(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TransactionService{Store: st}

	user, _ := seedUser(t, st, "dora", false)
	seedTransactions(t, st, user.ID, 25)

	t.Run("pages are sized and counted", func(t *testing.T) {
		page, err := svc.List(ctx, user.ID, 2, 10)
		require.NoError(t, err)
		require.Len(t, page.Transactions, 10)
		require.Equal(t, 2, page.Page)
		require.EqualValues(t, 25, page.Total)
		require.Equal(t, 3, page.TotalPages)
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		page, err := svc.List(ctx, user.ID, -1, 0)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, defaultPageSize, page.Limit)

		page, err = svc.List(ctx, user.ID, 1, 10_000)
		require.NoError(t, err)
		require.Equal(t, maxPageSize, page.Limit)
	})

	t.Run("newest first", func(t *testing.T) {
		ref := uuid.NewString()
		require.NoError(t, st.Transactions().CreateTransaction(context.Background(), domain.Transaction{
			ID:          idx.New().String(),
			UserID:      user.ID,
			Reference:   ref,
			Status:      domain.TransactionCompleted,
			AmountCents: 999,
			Currency:    "USD",
		}))
		// created_at has second-level ties in fast tests; id order breaks them
		time.Sleep(10 * time.Millisecond)

		page, err := svc.List(ctx, user.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, page.Transactions, 1)
		require.Equal(t, ref, page.Transactions[0].Reference)
	})
}

func TestTransactionListAll(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TransactionService{Store: st}

	for i := 0; i < 3; i++ {
		user, _ := seedUser(t, st, fmt.Sprintf("user%d", i), false)
		seedTransactions(t, st, user.ID, 2)
	}

	page, err := svc.ListAll(ctx, 1, 100)
	require.NoError(t, err)
	require.Len(t, page.Transactions, 6)
	require.EqualValues(t, 6, page.Total)
}
