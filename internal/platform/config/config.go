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

	// CORS
	AllowedOrigins []string

	// Rate limiting, e.g. "100-M" for 100 requests per minute per client.
	RateLimit string

	// OverdueSweepInterval is how often unpaid invoices past their due
	// date are flipped to OVERDUE.
	OverdueSweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	sweepStr := viper.GetString("OVERDUE_SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepStr)
	if err != nil || sweepInterval <= 0 {
		sweepInterval = time.Hour
		if sweepStr != "" {
			log.Printf("Warning: Invalid value for OVERDUE_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepStr, sweepInterval.String())
		}
	}
	cfg.OverdueSweepInterval = sweepInterval

	return cfg, nil
}
