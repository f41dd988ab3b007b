package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	LogLevel     string
	DevMode      bool
	DatabasePath string

	// Language model gateway
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	OpenAITimeoutSec  int

	// Budget protection
	DailyBudgetLimit     float64
	CostPer1KTokens      float64
	EnableCostProtection bool

	// Market data
	AMFINavURL       string
	EnableLiveQuotes bool
	RefreshSchedule  string
	CleanupSchedule  string

	// Rate limiting
	ChatRequestsPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("PORT", 8080),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		DatabasePath: getEnv("DATABASE_PATH", "./data/chimera.db"),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIMaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 150),
		OpenAITemperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.3),
		OpenAITimeoutSec:  getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 10),

		DailyBudgetLimit:     getEnvAsFloat("BUDGET_DAILY_LIMIT", 5.0),
		CostPer1KTokens:      getEnvAsFloat("BUDGET_COST_PER_1K_TOKENS", 0.002),
		EnableCostProtection: getEnvAsBool("BUDGET_ENABLE_COST_PROTECTION", true),

		AMFINavURL:       getEnv("AMFI_NAV_URL", "https://www.amfiindia.com/spages/NAVAll.txt"),
		EnableLiveQuotes: getEnvAsBool("ENABLE_LIVE_QUOTES", false),
		RefreshSchedule:  getEnv("MARKET_REFRESH_SCHEDULE", "@hourly"),
		CleanupSchedule:  getEnv("RANKING_CLEANUP_SCHEDULE", "@daily"),

		ChatRequestsPerMinute: getEnvAsInt("CHAT_REQUESTS_PER_MINUTE", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and sane
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	if c.DailyBudgetLimit <= 0 {
		return fmt.Errorf("BUDGET_DAILY_LIMIT must be positive, got %.2f", c.DailyBudgetLimit)
	}

	if c.CostPer1KTokens < 0 {
		return fmt.Errorf("BUDGET_COST_PER_1K_TOKENS must not be negative, got %.4f", c.CostPer1KTokens)
	}

	// Note: OpenAI credentials optional - the explanation gateway
	// degrades to canned responses without them.

	return nil
}

// Helper functions
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
