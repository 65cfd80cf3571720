package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Transfer engine settings
	SystemAccountID      string
	TransferMaxRetries   int
	TransferRetryBackoff time.Duration

	// Outbound notifications
	NotifyWebhookURL string

	// Per-IP rate limit for the API, in ulule/limiter format (e.g. "100-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "banking-core")
	viper.SetDefault("SYSTEM_ACCOUNT_ID", "")
	viper.SetDefault("TRANSFER_MAX_RETRIES", 3)
	viper.SetDefault("TRANSFER_RETRY_BACKOFF", "50ms")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load JWT Secret
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	// Load JWT Issuer
	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "banking-core" // Default JWT issuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	// Load transfer retry backoff (e.g., "50ms")
	retryBackoffStr := viper.GetString("TRANSFER_RETRY_BACKOFF")
	retryBackoff, err := time.ParseDuration(retryBackoffStr)
	if err != nil {
		retryBackoff = 50 * time.Millisecond
		if retryBackoffStr != "" {
			log.Printf("Warning: Invalid value for TRANSFER_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", retryBackoffStr, retryBackoff.String())
		}
	}

	maxRetries := viper.GetInt("TRANSFER_MAX_RETRIES")
	if maxRetries < 1 {
		maxRetries = 3
		log.Printf("Warning: TRANSFER_MAX_RETRIES must be at least 1. Defaulting to %d.\n", maxRetries)
	}

	systemAccountID := viper.GetString("SYSTEM_ACCOUNT_ID")
	if systemAccountID == "" {
		log.Println("Warning: SYSTEM_ACCOUNT_ID not set. Initial funds issuance will be unavailable.")
	}

	notifyWebhookURL := viper.GetString("NOTIFY_WEBHOOK_URL")
	if notifyWebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Transfer notifications will only be logged.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.SystemAccountID = systemAccountID
	cfg.TransferMaxRetries = maxRetries
	cfg.TransferRetryBackoff = retryBackoff
	cfg.NotifyWebhookURL = notifyWebhookURL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
