package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Provider   ProviderConfig
	Onboarding OnboardingConfig
	Security   SecurityConfig
	Jobs       JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds the dashboard session token settings
type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

// ProviderConfig holds the payments provider API and webhook settings
type ProviderConfig struct {
	BaseURL          string
	APIKey           string
	WebhookPublicKey string
	WebhookTolerance time.Duration
	Timeout          time.Duration
}

// OnboardingConfig holds the defaults used when provisioning an approved customer
type OnboardingConfig struct {
	WalletChain         string
	DestinationRail     string
	DepositCurrency     string
	DestinationCurrency string
}

// SecurityConfig holds operator credentials
type SecurityConfig struct {
	OperatorKeyHash string
}

// JobsConfig holds background job settings
type JobsConfig struct {
	BacklogInterval time.Duration
	BacklogGrace    time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "rampsync"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			Issuer:       getEnv("JWT_ISSUER", ""),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Provider: ProviderConfig{
			BaseURL:          strings.TrimRight(getEnv("PROVIDER_BASE_URL", "https://api.sandbox.bridge.xyz/v0"), "/"),
			APIKey:           getEnv("PROVIDER_API_KEY", ""),
			WebhookPublicKey: getEnv("PROVIDER_WEBHOOK_PUBLIC_KEY", ""),
			WebhookTolerance: getEnvAsDuration("PROVIDER_WEBHOOK_TOLERANCE", 10*time.Minute),
			Timeout:          getEnvAsDuration("PROVIDER_TIMEOUT", 15*time.Second),
		},
		Onboarding: OnboardingConfig{
			WalletChain:         getEnv("ONBOARDING_WALLET_CHAIN", "base"),
			DestinationRail:     getEnv("ONBOARDING_DESTINATION_RAIL", "base"),
			DepositCurrency:     getEnv("ONBOARDING_DEPOSIT_CURRENCY", "usd"),
			DestinationCurrency: getEnv("ONBOARDING_DESTINATION_CURRENCY", "usdc"),
		},
		Security: SecurityConfig{
			OperatorKeyHash: getEnv("OPERATOR_KEY_HASH", ""),
		},
		Jobs: JobsConfig{
			BacklogInterval: getEnvAsDuration("WEBHOOK_BACKLOG_INTERVAL", time.Minute),
			BacklogGrace:    getEnvAsDuration("WEBHOOK_BACKLOG_GRACE", 5*time.Minute),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
