package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Upstream quote provider
	ExchangeAPIURL string
	ExchangeAPIKey string

	// Rate cache bounds
	RateCacheTTL  time.Duration
	RateCacheSize int

	// Delay between sequential bulk upstream calls
	BulkPacingInterval time.Duration

	// Inbound HTTP rate limit in ulule formatted notation, e.g. "120-M"
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
	viper.SetDefault("EXCHANGE_API_URL", "https://api.currencylayer.com")
	viper.SetDefault("EXCHANGE_API_KEY", "")
	viper.SetDefault("RATE_CACHE_TTL", "24h")
	viper.SetDefault("RATE_CACHE_SIZE", 1000)
	viper.SetDefault("BULK_PACING_INTERVAL", "600ms")
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ExchangeAPIURL = viper.GetString("EXCHANGE_API_URL")
	cfg.ExchangeAPIKey = viper.GetString("EXCHANGE_API_KEY")
	if cfg.ExchangeAPIKey == "" {
		log.Println("Warning: EXCHANGE_API_KEY environment variable not set. Upstream calls will be rejected.")
	}

	cfg.RateCacheTTL = viper.GetDuration("RATE_CACHE_TTL")
	if cfg.RateCacheTTL <= 0 {
		cfg.RateCacheTTL = 24 * time.Hour
		log.Printf("Warning: invalid RATE_CACHE_TTL. Defaulting to %s\n", cfg.RateCacheTTL)
	}

	cfg.RateCacheSize = viper.GetInt("RATE_CACHE_SIZE")
	if cfg.RateCacheSize <= 0 {
		cfg.RateCacheSize = 1000
		log.Printf("Warning: invalid RATE_CACHE_SIZE. Defaulting to %d\n", cfg.RateCacheSize)
	}

	cfg.BulkPacingInterval = viper.GetDuration("BULK_PACING_INTERVAL")
	if cfg.BulkPacingInterval < 0 {
		cfg.BulkPacingInterval = 600 * time.Millisecond
		log.Printf("Warning: invalid BULK_PACING_INTERVAL. Defaulting to %s\n", cfg.BulkPacingInterval)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
