package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	BodyLimit        string
	CORSAllowOrigins []string
}

// EngineConfig carries the analysis thresholds. Every value has a production
// default matching the published analysis methodology; environment overrides
// exist for calibration runs, not per-request tuning.
type EngineConfig struct {
	// AmountTolerance is the maximum credit/debit difference, in currency
	// units, for two transactions to pair as one inter-account transfer.
	AmountTolerance decimal.Decimal
	// DateToleranceDays is the maximum day distance for a transfer pair.
	DateToleranceDays int
	// LargeTransferThreshold lets credits at or above this amount pair
	// without a marker or company-name hit.
	LargeTransferThreshold decimal.Decimal
	// RoundFigureThreshold is the minimum credit amount considered for
	// round-figure flagging; flagged amounts are whole thousands.
	RoundFigureThreshold decimal.Decimal
	// RoundFigureWarningPct is the round-figure share of total credits above
	// which the integrity check fails and the flag assessment elevates.
	RoundFigureWarningPct decimal.Decimal
	// BankChargeCeiling caps the debit amount classified as a bank charge.
	BankChargeCeiling decimal.Decimal
	// HighValueThreshold is the reporting threshold for the high-value flag
	// section.
	HighValueThreshold decimal.Decimal
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	// Missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Skipping .env file:", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			BodyLimit:    getEnv("SERVER_BODY_LIMIT", "16M"),
		},
		Engine: EngineConfig{
			AmountTolerance:        getDecimalEnv("ENGINE_AMOUNT_TOLERANCE", decimal.NewFromInt(1)),
			DateToleranceDays:      getIntEnv("ENGINE_DATE_TOLERANCE_DAYS", 1),
			LargeTransferThreshold: getDecimalEnv("ENGINE_LARGE_TRANSFER_THRESHOLD", decimal.NewFromInt(50000)),
			RoundFigureThreshold:   getDecimalEnv("ENGINE_ROUND_FIGURE_THRESHOLD", decimal.NewFromInt(10000)),
			RoundFigureWarningPct:  getDecimalEnv("ENGINE_ROUND_FIGURE_WARNING_PCT", decimal.NewFromInt(40)),
			BankChargeCeiling:      getDecimalEnv("ENGINE_BANK_CHARGE_CEILING", decimal.NewFromInt(1000)),
			HighValueThreshold:     getDecimalEnv("ENGINE_HIGH_VALUE_THRESHOLD", decimal.NewFromInt(500000)),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins). Consider setting specific origins for security.")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}
