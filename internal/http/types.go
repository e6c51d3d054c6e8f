package http

import (
	"time"

	"github.com/paydeck/paydeck/internal/domain"
)

// ErrorResponse is the uniform failure envelope for every API endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse is the bare acknowledgement envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// UserPayload is the client-facing projection of a user account.
// Credential material never appears here.
type UserPayload struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	Name             string `json:"name"`
	Phone            string `json:"phone,omitempty"`
	Role             string `json:"role"`
	DarkMode         bool   `json:"darkMode"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

func toUserPayload(u domain.User) UserPayload {
	return UserPayload{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		Name:             u.Name,
		Phone:            u.Phone,
		Role:             u.Role,
		DarkMode:         u.DarkMode,
		TwoFactorEnabled: u.TwoFactorConfigured(),
	}
}

// LoginResponse is returned by the login endpoint. When the account has
// TOTP enabled, TwoFactorRequired is set and Redirect is absent until
// the second factor is completed.
type LoginResponse struct {
	Success           bool         `json:"success"`
	TwoFactorRequired bool         `json:"twoFactorRequired,omitempty"`
	Redirect          string       `json:"redirect,omitempty"`
	User              *UserPayload `json:"user,omitempty"`
}

// StatusResponse reports whether the request carries a fully verified
// session. User is null when unauthenticated.
type StatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserPayload `json:"user"`
}

// RegisterResponse is returned after a successful signup.
type RegisterResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}

// TransactionPayload is the client-facing projection of a transaction.
// Amount is in the currency's minor unit.
type TransactionPayload struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toTransactionPayload(t domain.Transaction) TransactionPayload {
	return TransactionPayload{
		ID:        t.ID,
		Reference: t.Reference,
		Status:    t.Status,
		Amount:    t.AmountCents,
		Currency:  t.Currency,
		PaidAt:    t.PaidAt,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionListResponse is one page of transaction history.
type TransactionListResponse struct {
	Success      bool                 `json:"success"`
	Transactions []TransactionPayload `json:"transactions"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"totalPages"`
}

// CreatePaymentResponse hands the client the provider's hosted checkout URL.
type CreatePaymentResponse struct {
	Success          bool   `json:"success"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
}

// VerifyPaymentResponse reports the settled state of a payment.
type VerifyPaymentResponse struct {
	Success     bool               `json:"success"`
	Transaction TransactionPayload `json:"transaction"`
}

// TOTPEnrollResponse carries the provisioning secret, shown exactly once.
type TOTPEnrollResponse struct {
	Success    bool   `json:"success"`
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauthUrl"`
}
