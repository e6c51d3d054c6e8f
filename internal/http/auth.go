package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// AuthHandler serves login, two-factor completion, logout and the
// session status probe.
type AuthHandler struct {
	AuthService *service.AuthService

	SessionTTL    time.Duration
	SecureCookies bool
}

func redirectFor(user domain.User) string {
	if user.IsAdmin() {
		return "/admin"
	}
	return "/dashboard"
}

// HandleLogin handles POST /api/auth/admin/login
//
//	@Summary		Log in with username and password
//	@Description	Verifies credentials and establishes a session cookie. Accounts with
//	@Description	two-factor authentication enabled receive a pending session that must be
//	@Description	completed via the complete-2fa endpoint before it grants access.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	LoginResponse	"session established"
//	@Failure		400	{object}	ErrorResponse	"missing credentials"
//	@Failure		401	{object}	ErrorResponse	"invalid username or password"
//	@Failure		500	{object}	ErrorResponse	"internal server error"
//	@Router			/api/auth/admin/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("login rejected", "username", req.Username)
			writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		log.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	setSessionCookie(w, result.Token, h.SessionTTL, h.SecureCookies)

	user := toUserPayload(result.User)
	resp := LoginResponse{Success: true, User: &user}
	if result.TwoFactorRequired {
		resp.TwoFactorRequired = true
	} else {
		resp.Redirect = redirectFor(result.User)
	}

	log.Info("user logged in", "user_id", result.User.ID, "pending_2fa", result.TwoFactorRequired)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCompleteTwoFactor handles POST /api/auth/complete-2fa
//
//	@Summary		Complete two-factor authentication
//	@Description	Validates a TOTP code against the pending session and activates it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	LoginResponse	"session activated"
//	@Failure		400	{object}	ErrorResponse	"invalid verification code"
//	@Failure		401	{object}	ErrorResponse	"no active session"
//	@Failure		500	{object}	ErrorResponse	"internal server error"
//	@Router			/api/auth/complete-2fa [post].
func (h *AuthHandler) HandleCompleteTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req struct {
		UserID string `json:"userId"`
		Code   string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.UserID == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "User id and code are required")
		return
	}

	token := sessionToken(r)
	if err := h.AuthService.CompleteTwoFactor(ctx, token, req.UserID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			writeError(w, http.StatusUnauthorized, msgNoActiveSession)
		case errors.Is(err, service.ErrInvalidTOTPCode),
			errors.Is(err, service.ErrSessionMismatch),
			errors.Is(err, service.ErrTwoFactorNotSetUp):
			// One generic failure for every mismatch flavour.
			log.Warn("two-factor completion rejected", "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, service.ErrInvalidTOTPCode.Error())
		default:
			log.Error("two-factor completion failed", "err", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	user, _, err := h.AuthService.ResolveSession(ctx, token)
	if err != nil {
		log.Error("failed to resolve session after 2fa", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	payload := toUserPayload(user)
	log.Info("two-factor completed", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:  true,
		Redirect: redirectFor(user),
		User:     &payload,
	})
}

// HandleLogout handles POST /api/auth/logout
//
//	@Summary		Log out
//	@Description	Deletes the server-side session and clears the cookie. Always succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.AuthService.Logout(ctx, sessionToken(r)); err != nil {
		// The cookie is cleared regardless; a stale row will be swept
		// by housekeeping.
		slogx.FromContext(ctx).Error("failed to delete session", "err", err)
	}

	clearSessionCookie(w, h.SecureCookies)
	writeSuccess(w)
}

// HandleStatus handles GET /api/auth/status
//
//	@Summary		Session status
//	@Description	Reports whether the request carries a fully verified session.
//	@Description	Pending-2FA and expired sessions report unauthenticated.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/api/auth/status [get].
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _, err := h.AuthService.ResolveSession(ctx, sessionToken(r))
	if err != nil {
		if !errors.Is(err, service.ErrNoActiveSession) {
			slogx.FromContext(ctx).Error("failed to resolve session", "err", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, StatusResponse{Authenticated: false, User: nil})
		return
	}

	payload := toUserPayload(user)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Authenticated: true, User: &payload})
}
