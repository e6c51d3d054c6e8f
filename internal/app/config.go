package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port         int    // HTTP server port (default: 8080)
	BaseURL      string // Public origin of the dashboard, used in reset links (default: http://localhost:8080)
	DatabaseFile string // Path to SQLite database file (default: ./paydeck.db)

	SessionTTL    time.Duration // Session lifetime (default: 24h)
	ResetTokenTTL time.Duration // Password reset token lifetime (default: 1h)
	SecureCookies bool          // Set the Secure flag on session cookies (default: true outside dev)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired row sweep interval (default: 1h)

	// Admin seed credentials, applied only when the users table is empty.
	// A random password is generated (and logged once) when unset.
	AdminEmail    string
	AdminUsername string
	AdminPassword string
	AdminName     string

	// Payment provider settings.
	PaymentAPIURL      string        // Provider REST base URL
	PaymentSecretKey   string        // Provider secret key (Bearer auth)
	PaymentCurrency    string        // Default currency for payments (default: USD)
	PaymentStateSecret string        // HS256 secret for callback state tokens (generated when unset)
	PaymentStateTTL    time.Duration // Callback state token lifetime (default: 1h)

	TOTPIssuer string // Issuer shown in authenticator apps (default: Paydeck)
}

func LoadConfig() Config {
	// Local development keeps its settings in a .env file; absence is fine.
	_ = godotenv.Load()

	env := getEnvOrDefault("ENV", "dev")

	return Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:         getEnvIntOrDefault("PORT", 8080),
		BaseURL:      getEnvOrDefault("PAYDECK_BASE_URL", "http://localhost:8080"),
		DatabaseFile: getEnvOrDefault("PAYDECK_DATABASE_FILE", "paydeck.db"),

		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		ResetTokenTTL: getEnvDurationOrDefault("RESET_TOKEN_TTL", 1*time.Hour),
		SecureCookies: getEnvBoolOrDefault("SECURE_COOKIES", env != "dev"),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		AdminEmail:    getEnvOrDefault("PAYDECK_ADMIN_EMAIL", "admin@paydeck.local"),
		AdminUsername: getEnvOrDefault("PAYDECK_ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("PAYDECK_ADMIN_PASSWORD"),
		AdminName:     getEnvOrDefault("PAYDECK_ADMIN_NAME", "Administrator"),

		PaymentAPIURL:      getEnvOrDefault("PAYMENT_API_URL", "https://api.paystack.co"),
		PaymentSecretKey:   os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentCurrency:    getEnvOrDefault("PAYMENT_CURRENCY", "USD"),
		PaymentStateSecret: os.Getenv("PAYMENT_STATE_SECRET"),
		PaymentStateTTL:    getEnvDurationOrDefault("PAYMENT_STATE_TTL", 1*time.Hour),

		TOTPIssuer: getEnvOrDefault("TOTP_ISSUER", "Paydeck"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
