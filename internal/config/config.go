package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken    string
	OpenAIAPIKey     string
	CryptoPanicToken string
	ServerPort       string
	DatabasePath     string
	LogLevel         string
	CheckInterval    time.Duration
	CooldownWindow   time.Duration
	FetchTimeout     time.Duration
	BatchSize        int
	MaxAlertsPerRun  int
	RedditSubreddits []string
	YahooTickers     []string
}

func Load() *Config {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	return &Config{
		TelegramToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		CryptoPanicToken: getEnv("CRYPTOPANIC_TOKEN", ""),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "bearwatch.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CheckInterval:    getEnvAsDuration("CHECK_INTERVAL", 5*time.Minute),
		CooldownWindow:   getEnvAsDuration("COOLDOWN_WINDOW", 4*time.Hour),
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		BatchSize:        getEnvAsInt("BATCH_SIZE", 8),
		MaxAlertsPerRun:  getEnvAsInt("MAX_ALERTS_PER_RUN", 2),
		RedditSubreddits: getEnvAsSlice("REDDIT_SUBREDDITS", []string{"IndianStockMarket", "StockMarketIndia", "IndianStreetBets", "stocks", "investing"}),
		YahooTickers:     getEnvAsSlice("YAHOO_TICKERS", []string{"AAPL", "TSLA", "BTC-USD", "ETH-USD"}),
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
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
