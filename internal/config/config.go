package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Settlement SettlementConfig
	Payout     PayoutConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// SettlementConfig holds the commercial policy for commissions and payouts.
// It is injected into the calculator and the affiliate tracker at
// construction time instead of being read ad hoc from a key/value store.
type SettlementConfig struct {
	// DefaultCommissionPercent applies when an order line carries no rate.
	DefaultCommissionPercent decimal.Decimal
	// AffiliateGracePeriod is the delay between a commission being confirmed
	// and it becoming withdrawable, covering refund/return risk.
	AffiliateGracePeriod time.Duration
	// WithdrawalMinAmount rejects withdrawal requests below it. Zero disables
	// the check.
	WithdrawalMinAmount decimal.Decimal
	// PayoutStuckThreshold is how long a withdrawal may sit in PROCESSING
	// before the reconcile job re-queries the payout provider.
	PayoutStuckThreshold time.Duration
}

// PayoutConfig holds the external payout provider settings
type PayoutConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "sellhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Settlement: SettlementConfig{
			DefaultCommissionPercent: getEnvAsDecimal("SETTLEMENT_DEFAULT_COMMISSION_PERCENT", decimal.NewFromInt(10)),
			AffiliateGracePeriod:     getEnvAsDuration("SETTLEMENT_AFFILIATE_GRACE_PERIOD", 7*24*time.Hour),
			WithdrawalMinAmount:      getEnvAsDecimal("SETTLEMENT_WITHDRAWAL_MIN", decimal.Zero),
			PayoutStuckThreshold:     getEnvAsDuration("SETTLEMENT_PAYOUT_STUCK_THRESHOLD", 10*time.Minute),
		},
		Payout: PayoutConfig{
			BaseURL: getEnv("PAYOUT_BASE_URL", "http://localhost:9090"),
			APIKey:  getEnv("PAYOUT_API_KEY", ""),
			Timeout: getEnvAsDuration("PAYOUT_TIMEOUT", 15*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
