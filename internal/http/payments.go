package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// PaymentsHandler serves payment initiation and callback verification.
type PaymentsHandler struct {
	PaymentService *service.PaymentService
	UserService    *service.UserService
}

// HandleCreatePayment handles POST /api/create-payment
//
//	@Summary		Initiate a payment
//	@Description	Records a pending transaction and returns the provider's hosted
//	@Description	checkout URL. Amount is in the currency's minor unit.
//	@Tags			Payments
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	CreatePaymentResponse
//	@Failure		400	{object}	ErrorResponse	"invalid amount"
//	@Failure		401	{object}	ErrorResponse	"authentication required"
//	@Failure		502	{object}	ErrorResponse	"provider failure"
//	@Router			/api/create-payment [post].
func (h *PaymentsHandler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		log.Error("failed to load user", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	session, err := h.PaymentService.CreatePayment(ctx, user, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, service.ErrInvalidAmount.Error())
			return
		}
		log.Error("failed to create payment", "user_id", userID, "err", err)
		writeError(w, http.StatusBadGateway, "Unable to initiate payment. Please try again.")
		return
	}

	log.Info("payment initiated", "user_id", userID, "reference", session.Reference)
	httpx.WriteJSON(w, http.StatusOK, CreatePaymentResponse{
		Success:          true,
		Reference:        session.Reference,
		AuthorizationURL: session.AuthorizationURL,
	})
}

// HandleVerifyPayment handles GET /api/verify-payment
//
//	@Summary		Verify a payment after the provider callback
//	@Description	Validates the signed state token, queries the provider and settles
//	@Description	the transaction to completed or failed.
//	@Tags			Payments
//	@Produce		json
//	@Param			reference	query		string	true	"payment reference"
//	@Param			state		query		string	true	"signed callback state token"
//	@Success		200			{object}	VerifyPaymentResponse
//	@Failure		400			{object}	ErrorResponse	"invalid state or reference"
//	@Failure		502			{object}	ErrorResponse	"provider failure"
//	@Router			/api/verify-payment [get].
func (h *PaymentsHandler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	reference := r.URL.Query().Get("reference")
	state := r.URL.Query().Get("state")
	if reference == "" || state == "" {
		writeError(w, http.StatusBadRequest, "Reference and state are required")
		return
	}

	tx, err := h.PaymentService.VerifyPayment(ctx, reference, state)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentState) {
			log.Warn("payment verification rejected", "reference", reference)
			writeError(w, http.StatusBadRequest, service.ErrInvalidPaymentState.Error())
			return
		}
		log.Error("failed to verify payment", "reference", reference, "err", err)
		writeError(w, http.StatusBadGateway, "Unable to verify payment. Please try again.")
		return
	}

	log.Info("payment verified", "reference", reference, "status", tx.Status)
	httpx.WriteJSON(w, http.StatusOK, VerifyPaymentResponse{
		Success:     true,
		Transaction: toTransactionPayload(tx),
	})
}
