package http

import (
	"net/http"

	"github.com/paydeck/paydeck/pkg/httpx"
)

// Canonical error messages. Kept as constants so handlers and tests
// cannot drift apart on wording.
const (
	msgServerError     = "Internal server error"
	msgAuthRequired    = "Authentication required"
	msgForbidden       = "Forbidden"
	msgInvalidBody     = "Invalid request body"
	msgNoActiveSession = "No active session"
)

func writeError(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, ErrorResponse{Success: false, Error: msg})
}

func writeSuccess(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
