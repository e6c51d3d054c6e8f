package domain

import "time"

// Transaction status values.
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Transaction records a payment initiated through the external provider.
// Reference is the provider-facing identifier and is unique.
type Transaction struct {
	ID          string
	UserID      string
	Reference   string
	Status      string
	AmountCents int64
	Currency    string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
