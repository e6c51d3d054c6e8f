package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

// SessionMiddleware is the server-side route guard. It resolves the
// session cookie before any protected handler runs and injects the
// authenticated user's id and role into the request context. Requests
// without a fully verified session (missing cookie, pending second
// factor, expired) are rejected with 401.
//
// When diagnostics is true an X-Route-Guard header records the guard's
// decision, which the dashboard uses in non-production environments.
func SessionMiddleware(auth *service.AuthService, diagnostics bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, _, err := auth.ResolveSession(ctx, sessionToken(r))
			if err != nil {
				if diagnostics {
					w.Header().Set("X-Route-Guard", "denied")
				}
				if errors.Is(err, service.ErrNoActiveSession) {
					writeError(w, http.StatusUnauthorized, msgAuthRequired)
					return
				}
				slogx.FromContext(ctx).Error("failed to resolve session", "err", err)
				writeError(w, http.StatusInternalServerError, msgServerError)
				return
			}

			if diagnostics {
				w.Header().Set("X-Route-Guard", "allowed")
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserRole, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated user does not hold
// the given role. Must run after SessionMiddleware.
func RequireRole(role string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpx.UserRoleFromContext(r.Context()) != role {
				writeError(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
