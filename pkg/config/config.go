package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// CurrencyCode is used for display formatting only; stored amounts are
	// currency-agnostic minor units.
	CurrencyCode string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single configured credential; this is a single-user personal backend.
	APIUsername string
	APIPassword string

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	LoginRateLimit string

	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "finbook-backend")
	viper.SetDefault("API_USERNAME", "owner")
	viper.SetDefault("API_PASSWORD", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.APIUsername = viper.GetString("API_USERNAME")
	cfg.APIPassword = viper.GetString("API_PASSWORD")
	if cfg.APIPassword == "" {
		log.Println("Warning: API_PASSWORD not set. Login will be rejected until it is configured.")
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}
