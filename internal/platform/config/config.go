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
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LoginRateLimit    string

	// SAP Business One Service Layer
	SAPBaseURL   string
	SAPCompanyDB string
	SAPUsername  string
	SAPPassword  string
	SAPTimeout   time.Duration

	// Redis master data cache
	RedisURL string
	CacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "wms-backend")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("SAP_BASE_URL", "")
	viper.SetDefault("SAP_COMPANY_DB", "")
	viper.SetDefault("SAP_USERNAME", "")
	viper.SetDefault("SAP_PASSWORD", "")
	viper.SetDefault("SAP_TIMEOUT", "30s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "15m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.SAPBaseURL = viper.GetString("SAP_BASE_URL")
	cfg.SAPCompanyDB = viper.GetString("SAP_COMPANY_DB")
	cfg.SAPUsername = viper.GetString("SAP_USERNAME")
	cfg.SAPPassword = viper.GetString("SAP_PASSWORD")
	if cfg.SAPBaseURL == "" {
		log.Println("Warning: SAP_BASE_URL not set. ERP calls will fail.")
	}

	sapTimeoutStr := viper.GetString("SAP_TIMEOUT")
	sapTimeout, err := time.ParseDuration(sapTimeoutStr)
	if err != nil {
		sapTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for SAP_TIMEOUT ('%s'). Defaulting to %s.\n", sapTimeoutStr, sapTimeout.String())
	}
	cfg.SAPTimeout = sapTimeout

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Master data will be fetched from the ERP on every request.")
	}

	cacheTTLStr := viper.GetString("CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 15 * time.Minute
		log.Printf("Warning: Invalid value for CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
	}
	cfg.CacheTTL = cacheTTL

	return cfg, nil
}
