package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/pkg/httpx"
	"github.com/paydeck/paydeck/pkg/slogx"

	_ "github.com/paydeck/paydeck/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	sessionTTL    time.Duration
	secureCookies bool
	diagnostics   bool
	baseURL       string

	store store.Store

	AuthService        *service.AuthService
	UserService        *service.UserService
	ResetService       *service.PasswordResetService
	TransactionService *service.TransactionService
	PaymentService     *service.PaymentService
}

// RouterConfig carries the environment-derived knobs the router needs.
type RouterConfig struct {
	BuildVersion  string
	SessionTTL    time.Duration
	SecureCookies bool

	// Diagnostics enables the X-Route-Guard response header. Off in
	// production.
	Diagnostics bool

	// BaseURL is the dashboard's public origin (reset links).
	BaseURL string
}

func NewRouter(cfg RouterConfig, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  cfg.BuildVersion,
		startTime:     time.Now(),
		logger:        logger,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
		diagnostics:   cfg.Diagnostics,
		baseURL:       cfg.BaseURL,
		store:         st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUser()
	r.registerAdmin()
	r.registerPayments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Paydeck API
//	@version		0.1.0
//	@description	Session-authenticated backend for the Paydeck payments dashboard:
//	@description	credential login with optional TOTP, password reset, transaction
//	@description	history and hosted checkout via the card payment provider.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						paydeck_session
//	@description				Opaque session token issued by the login endpoint.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// guard is the session route guard applied to protected endpoints.
func (r *Router) guard() httpx.Middleware {
	return SessionMiddleware(r.AuthService, r.diagnostics)
}

func (r *Router) registerAuth() {
	authHandler := &AuthHandler{
		AuthService:   r.AuthService,
		SessionTTL:    r.sessionTTL,
		SecureCookies: r.secureCookies,
	}
	registerHandler := &RegisterHandler{
		UserService:   r.UserService,
		AuthService:   r.AuthService,
		SessionTTL:    r.sessionTTL,
		SecureCookies: r.secureCookies,
	}
	resetHandler := &PasswordResetHandler{
		ResetService: r.ResetService,
		BaseURL:      r.baseURL,
	}

	// Credential endpoints - strict rate limits by IP (brute force prevention)
	r.Mux.Handle("POST /api/auth/admin/login",
		httpx.Chain(http.HandlerFunc(authHandler.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/complete-2fa",
		httpx.Chain(http.HandlerFunc(authHandler.HandleCompleteTwoFactor),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(registerHandler.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleForgotPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/reset-password",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Token probe - moderate limit (the dashboard polls it on page load)
	r.Mux.Handle("GET /api/auth/verify-reset-token",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleVerifyResetToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Session probes - lenient limits
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(authHandler.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/status",
		httpx.Chain(http.HandlerFunc(authHandler.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUser() {
	profileHandler := &ProfileHandler{UserService: r.UserService}
	mfaHandler := &MFAHandler{UserService: r.UserService}
	txHandler := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.Handle("GET /api/user/transactions",
		httpx.Chain(http.HandlerFunc(txHandler.HandleList),
			r.guard(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/user/update-profile",
		httpx.Chain(http.HandlerFunc(profileHandler.HandleUpdateProfile),
			r.guard(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/user/update-theme",
		httpx.Chain(http.HandlerFunc(profileHandler.HandleUpdateTheme),
			r.guard(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/user/2fa/enroll",
		httpx.Chain(http.HandlerFunc(mfaHandler.HandleEnroll),
			r.guard(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/user/2fa/verify",
		httpx.Chain(http.HandlerFunc(mfaHandler.HandleVerify),
			r.guard(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	txHandler := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.Handle("GET /api/admin/transactions",
		httpx.Chain(http.HandlerFunc(txHandler.HandleListAll),
			r.guard(),
			RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPayments() {
	h := &PaymentsHandler{
		PaymentService: r.PaymentService,
		UserService:    r.UserService,
	}

	r.Mux.Handle("POST /api/create-payment",
		httpx.Chain(http.HandlerFunc(h.HandleCreatePayment),
			r.guard(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Provider callback lands here unauthenticated; the signed state
	// token is the credential.
	r.Mux.Handle("GET /api/verify-payment",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyPayment),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
