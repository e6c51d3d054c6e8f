package http

import (
	"net/http"
	"strconv"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// TransactionsHandler serves transaction history listings.
type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func toListResponse(p service.TransactionPage) TransactionListResponse {
	items := make([]TransactionPayload, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		items = append(items, toTransactionPayload(t))
	}
	return TransactionListResponse{
		Success:      true,
		Transactions: items,
		Page:         p.Page,
		Limit:        p.Limit,
		Total:        p.Total,
		TotalPages:   p.TotalPages,
	}
}

// HandleList handles GET /api/user/transactions
//
//	@Summary		List the user's transactions
//	@Description	Returns the authenticated user's transaction history, newest first.
//	@Description	Results are strictly scoped to the session's user.
//	@Tags			User
//	@Security		SessionCookie
//	@Produce		json
//	@Param			page	query		int	false	"page number (1-based)"
//	@Param			limit	query		int	false	"page size (max 100)"
//	@Success		200		{object}	TransactionListResponse
//	@Failure		401		{object}	ErrorResponse	"authentication required"
//	@Failure		500		{object}	ErrorResponse	"internal server error"
//	@Router			/api/user/transactions [get].
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	page, limit := pageParams(r)
	result, err := h.TransactionService.List(ctx, userID, page, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list transactions", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toListResponse(result))
}

// HandleListAll handles GET /api/admin/transactions
//
//	@Summary		List transactions across all users
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			page	query		int	false	"page number (1-based)"
//	@Param			limit	query		int	false	"page size (max 100)"
//	@Success		200		{object}	TransactionListResponse
//	@Failure		401		{object}	ErrorResponse	"authentication required"
//	@Failure		403		{object}	ErrorResponse	"admin role required"
//	@Failure		500		{object}	ErrorResponse	"internal server error"
//	@Router			/api/admin/transactions [get].
func (h *TransactionsHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit := pageParams(r)
	result, err := h.TransactionService.ListAll(ctx, page, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list transactions", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toListResponse(result))
}
