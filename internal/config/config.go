package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Mailbox   MailboxConfig
	Ledger    LedgerConfig
	Pipeline  PipelineConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// GeminiConfig holds document extraction model configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// MailboxConfig holds inbound mailbox polling configuration
type MailboxConfig struct {
	Enabled        bool
	TenantID       string // tenant the polled mailbox belongs to
	Address        string // mailbox to poll, e.g. orders@tenant.example
	BaseURL        string // mail provider REST endpoint
	ClientID       string
	ClientSecret   string
	TokenURL       string
	RedisAddr      string
	PollMinutes    int     // poll cycle interval
	MessagesPerMin float64 // extraction budget: messages dispatched per minute
}

// LedgerConfig holds the accounting export connection
type LedgerConfig struct {
	URL      string
	Database string
	Username string
	Password string
}

// PipelineConfig holds ingestion tuning knobs
type PipelineConfig struct {
	StaleImportMinutes    int // processing rows older than this are reclaimed
	ReaperIntervalMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "alfies"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Mailbox: MailboxConfig{
			Enabled:        getEnv("MAILBOX_ENABLED", "false") == "true",
			TenantID:       os.Getenv("MAILBOX_TENANT_ID"),
			Address:        os.Getenv("MAILBOX_ADDRESS"),
			BaseURL:        getEnv("MAILBOX_BASE_URL", "https://graph.microsoft.com/v1.0"),
			ClientID:       os.Getenv("MAILBOX_CLIENT_ID"),
			ClientSecret:   os.Getenv("MAILBOX_CLIENT_SECRET"),
			TokenURL:       os.Getenv("MAILBOX_TOKEN_URL"),
			RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
			PollMinutes:    getEnvInt("MAILBOX_POLL_MINUTES", 5),
			MessagesPerMin: getEnvFloat("MAILBOX_MESSAGES_PER_MIN", 6),
		},
		Ledger: LedgerConfig{
			URL:      os.Getenv("LEDGER_URL"),
			Database: os.Getenv("LEDGER_DATABASE"),
			Username: os.Getenv("LEDGER_USERNAME"),
			Password: os.Getenv("LEDGER_PASSWORD"),
		},
		Pipeline: PipelineConfig{
			StaleImportMinutes:    getEnvInt("STALE_IMPORT_MINUTES", 30),
			ReaperIntervalMinutes: getEnvInt("REAPER_INTERVAL_MINUTES", 10),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
