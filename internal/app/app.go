package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paydeck/paydeck/internal/domain"
	httpapi "github.com/paydeck/paydeck/internal/http"
	"github.com/paydeck/paydeck/internal/payment"
	"github.com/paydeck/paydeck/internal/service"
	"github.com/paydeck/paydeck/internal/store"
	"github.com/paydeck/paydeck/internal/store/drivers/sqlite"
	"github.com/paydeck/paydeck/pkg/cryptox"
	"github.com/paydeck/paydeck/pkg/idx"
	"github.com/paydeck/paydeck/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the dashboard backend with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	resetService        *service.PasswordResetService
	transactionService  *service.TransactionService
	paymentService      *service.PaymentService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "paydeck",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("paydeck starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down paydeck...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("paydeck stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// seedAdmin creates the first admin account when the users table is
// empty. Credentials come from configuration; when no password is
// configured a random one is generated and logged exactly once.
func (app *Application) seedAdmin(ctx context.Context) error {
	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	password := app.cfg.AdminPassword
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Email:        app.cfg.AdminEmail,
		Username:     app.cfg.AdminUsername,
		Name:         app.cfg.AdminName,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := app.db.Users().CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	if generated {
		// Shown once; rotate it after first login.
		app.logger.Warn("seeded admin account with generated password",
			"username", admin.Username, "password", password)
	} else {
		app.logger.Info("seeded admin account", "username", admin.Username)
	}

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.userService = &service.UserService{
		Store:      app.db,
		TOTPIssuer: app.cfg.TOTPIssuer,
	}
	app.resetService = &service.PasswordResetService{
		Store:    app.db,
		TokenTTL: app.cfg.ResetTokenTTL,
	}
	app.transactionService = &service.TransactionService{Store: app.db}

	stateSecret := app.cfg.PaymentStateSecret
	if stateSecret == "" {
		// In-flight checkouts will not survive a restart without a
		// configured secret.
		stateSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("PAYMENT_STATE_SECRET not set, generated an ephemeral one")
	}

	app.paymentService = &service.PaymentService{
		Store:    app.db,
		Provider: payment.NewClient(app.cfg.PaymentAPIURL, app.cfg.PaymentSecretKey),
		States: &payment.StateSigner{
			Secret: []byte(stateSecret),
			Issuer: "paydeck",
			TTL:    app.cfg.PaymentStateTTL,
		},
		CallbackURL:     app.cfg.BaseURL + "/api/verify-payment",
		DefaultCurrency: app.cfg.PaymentCurrency,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		BuildVersion:  BuildVersion,
		SessionTTL:    app.cfg.SessionTTL,
		SecureCookies: app.cfg.SecureCookies,
		Diagnostics:   app.cfg.Env != "prod",
		BaseURL:       app.cfg.BaseURL,
	}, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ResetService = app.resetService
	router.TransactionService = app.transactionService
	router.PaymentService = app.paymentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
