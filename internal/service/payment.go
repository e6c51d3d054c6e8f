package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/payment"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/idx"
)

// PaymentService drives the hosted checkout flow: it records a pending
// transaction, hands the user to the provider, and settles the row when
// the callback comes back.
type PaymentService struct {
	Store    store.Store
	Provider *payment.Client
	States   *payment.StateSigner

	// CallbackURL is this service's verify-payment endpoint, given to
	// the provider so it can redirect the user back after checkout.
	CallbackURL string

	// DefaultCurrency is used when the request does not name one.
	DefaultCurrency string
}

// CheckoutSession is the result of initiating a payment.
type CheckoutSession struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// CreatePayment records a pending transaction for the user and asks the
// provider for a hosted checkout URL. The callback URL carries a signed
// state token binding the reference to the initiating user.
func (s *PaymentService) CreatePayment(ctx context.Context, user domain.User, amountCents int64, currency string) (CheckoutSession, error) {
	if amountCents <= 0 {
		return CheckoutSession{}, ErrInvalidAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.DefaultCurrency
	}

	reference := uuid.NewString()

	tx := domain.Transaction{
		ID:          idx.New().String(),
		UserID:      user.ID,
		Reference:   reference,
		Status:      domain.TransactionPending,
		AmountCents: amountCents,
		Currency:    currency,
	}
	if err := s.Store.Transactions().CreateTransaction(ctx, tx); err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	state, err := s.States.Sign(reference, user.ID)
	if err != nil {
		return CheckoutSession{}, err
	}

	callback := fmt.Sprintf("%s?reference=%s&state=%s",
		s.CallbackURL, url.QueryEscape(reference), url.QueryEscape(state))

	resp, err := s.Provider.Initialize(ctx, payment.InitializeRequest{
		Email:       user.Email,
		Amount:      amountCents,
		Currency:    currency,
		Reference:   reference,
		CallbackURL: callback,
	})
	if err != nil {
		// The row stays pending; verify-payment or housekeeping will
		// never settle it, and the user can simply retry.
		return CheckoutSession{}, fmt.Errorf("failed to initialize payment: %w", err)
	}

	return CheckoutSession{
		Reference:        reference,
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
	}, nil
}

// VerifyPayment settles a transaction after the provider callback. The
// state token must match the reference and the transaction's owner;
// anything else is treated as a forged or replayed callback.
func (s *PaymentService) VerifyPayment(ctx context.Context, reference, state string) (domain.Transaction, error) {
	stateRef, stateUser, err := s.States.Verify(state)
	if err != nil || stateRef != reference {
		return domain.Transaction{}, ErrInvalidPaymentState
	}

	tx, err := s.Store.Transactions().GetTransactionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Transaction{}, ErrInvalidPaymentState
		}
		return domain.Transaction{}, fmt.Errorf("failed to load transaction: %w", err)
	}
	if tx.UserID != stateUser {
		return domain.Transaction{}, ErrInvalidPaymentState
	}

	// Settled rows are final; re-delivered callbacks are a no-op.
	if tx.Status != domain.TransactionPending {
		return tx, nil
	}

	resp, err := s.Provider.Verify(ctx, reference)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to verify payment: %w", err)
	}

	status := domain.TransactionFailed
	var paidAt *time.Time
	if resp.Succeeded() {
		status = domain.TransactionCompleted
		if resp.PaidAt != nil {
			paidAt = resp.PaidAt
		} else {
			now := time.Now().UTC()
			paidAt = &now
		}
	}

	if err := s.Store.Transactions().UpdateTransactionStatus(ctx, reference, status, paidAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}

	tx.Status = status
	tx.PaidAt = paidAt
	return tx, nil
}
