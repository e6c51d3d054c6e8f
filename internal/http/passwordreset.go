package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// PasswordResetHandler serves the forgot/verify/reset password flow.
type PasswordResetHandler struct {
	ResetService *service.PasswordResetService

	// BaseURL is the dashboard's public origin, used to build reset links.
	BaseURL string
}

// HandleForgotPassword handles POST /api/auth/forgot-password
//
//	@Summary		Request a password reset
//	@Description	Always answers success so the endpoint cannot be used to probe which
//	@Description	emails have accounts. When the account exists, the reset link is emitted
//	@Description	through the delivery side channel (currently the service log).
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse	"missing email"
//	@Router			/api/auth/forgot-password [post].
func (h *PasswordResetHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.ResetService.RequestReset(ctx, req.Email)
	if err != nil {
		log.Error("failed to issue reset token", "err", err)
		// Still answer success: the response must not reveal whether
		// the email mapped to an account.
	}
	if token != "" {
		// Delivery side channel until an email sender is wired up.
		log.Info("password reset link issued",
			"email", req.Email,
			"link", h.BaseURL+"/reset-password?token="+url.QueryEscape(token),
		)
	}

	writeSuccess(w)
}

// HandleVerifyResetToken handles GET /api/auth/verify-reset-token
//
//	@Summary		Check a reset token
//	@Description	Reports whether the token is live. Unknown and expired tokens are
//	@Description	indistinguishable.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string	true	"reset token"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	ErrorResponse	"invalid or expired token"
//	@Router			/api/auth/verify-reset-token [get].
func (h *PasswordResetHandler) HandleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ResetService.VerifyToken(ctx, r.URL.Query().Get("token")); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			writeError(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		slogx.FromContext(ctx).Error("failed to verify reset token", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeSuccess(w)
}

// HandleResetPassword handles POST /api/auth/reset-password
//
//	@Summary		Reset the password
//	@Description	Consumes a live reset token, sets the new password and revokes every
//	@Description	session of the account. Tokens are single use.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse	"invalid token or weak password"
//	@Failure		500	{object}	ErrorResponse	"internal server error"
//	@Router			/api/auth/reset-password [post].
func (h *PasswordResetHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	if err := h.ResetService.ResetPassword(ctx, req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			writeError(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		log.Error("failed to reset password", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	log.Info("password reset completed")
	writeSuccess(w)
}
