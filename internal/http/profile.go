package http

import (
	"encoding/json"
	"net/http"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// ProfileHandler serves profile and theme updates for the
// authenticated user.
type ProfileHandler struct {
	UserService *service.UserService
}

// HandleUpdateProfile handles POST /api/user/update-profile
//
//	@Summary		Update display name and phone
//	@Tags			User
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse	"missing name"
//	@Failure		401	{object}	ErrorResponse	"authentication required"
//	@Router			/api/user/update-profile [post].
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.UserService.UpdateProfile(ctx, userID, req.Name, req.Phone); err != nil {
		slogx.FromContext(ctx).Error("failed to update profile", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeSuccess(w)
}

// HandleUpdateTheme handles POST /api/user/update-theme
//
//	@Summary		Update the dark mode preference
//	@Tags			User
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		401	{object}	ErrorResponse	"authentication required"
//	@Router			/api/user/update-theme [post].
func (h *ProfileHandler) HandleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req struct {
		DarkMode bool `json:"darkMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.UserService.UpdateTheme(ctx, userID, req.DarkMode); err != nil {
		slogx.FromContext(ctx).Error("failed to update theme", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeSuccess(w)
}
