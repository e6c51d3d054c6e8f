package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

const minPasswordLength = 8

// RegisterHandler serves account signup.
type RegisterHandler struct {
	UserService *service.UserService
	AuthService *service.AuthService

	SessionTTL    time.Duration
	SecureCookies bool
}

// HandleRegister handles POST /api/auth/register
//
//	@Summary		Create an account
//	@Description	Registers a new user-role account and logs it straight into a session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	RegisterResponse
//	@Failure		400	{object}	ErrorResponse	"validation failure"
//	@Failure		409	{object}	ErrorResponse	"email or username already registered"
//	@Failure		500	{object}	ErrorResponse	"internal server error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	switch {
	case req.Email == "" || req.Username == "" || req.Name == "":
		writeError(w, http.StatusBadRequest, "Email, username and name are required")
		return
	case len(req.Password) < minPasswordLength:
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountExists) {
			writeError(w, http.StatusConflict, service.ErrAccountExists.Error())
			return
		}
		log.Error("registration failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	token, err := h.AuthService.StartSession(ctx, user)
	if err != nil {
		log.Error("failed to start session after registration", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.SecureCookies)

	log.Info("account registered", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Success: true,
		User:    toUserPayload(user),
	})
}
