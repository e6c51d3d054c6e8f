package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// MFAHandler serves TOTP enrollment for the authenticated user.
type MFAHandler struct {
	UserService *service.UserService
}

// HandleEnroll handles POST /api/user/2fa/enroll
//
//	@Summary		Enroll in two-factor authentication
//	@Description	Generates a TOTP secret for the account. The factor is not enforced
//	@Description	until a code is confirmed via the verify endpoint.
//	@Tags			User
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	TOTPEnrollResponse	"secret and provisioning URI, shown once"
//	@Failure		400	{object}	ErrorResponse		"already enabled"
//	@Failure		401	{object}	ErrorResponse		"authentication required"
//	@Failure		500	{object}	ErrorResponse		"internal server error"
//	@Router			/api/user/2fa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	enrollment, err := h.UserService.EnrollTOTP(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrTwoFactorEnabled) {
			writeError(w, http.StatusBadRequest, service.ErrTwoFactorEnabled.Error())
			return
		}
		slogx.FromContext(ctx).Error("failed to enroll totp", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TOTPEnrollResponse{
		Success:    true,
		Secret:     enrollment.Secret,
		OtpauthURL: enrollment.URL,
	})
}

// HandleVerify handles POST /api/user/2fa/verify
//
//	@Summary		Confirm two-factor enrollment
//	@Description	Validates a code from the authenticator and enables the factor. From
//	@Description	the next login on, sessions start in the pending-2FA state.
//	@Tags			User
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse	"invalid code or no pending enrollment"
//	@Failure		401	{object}	ErrorResponse	"authentication required"
//	@Failure		500	{object}	ErrorResponse	"internal server error"
//	@Router			/api/user/2fa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "Code is required")
		return
	}

	if err := h.UserService.VerifyTOTP(ctx, userID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			writeError(w, http.StatusBadRequest, service.ErrInvalidTOTPCode.Error())
		case errors.Is(err, service.ErrTwoFactorEnabled), errors.Is(err, service.ErrTwoFactorNotSetUp):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error("failed to verify totp", "user_id", userID, "err", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	log.Info("two-factor enabled", "user_id", userID)
	writeSuccess(w)
}
