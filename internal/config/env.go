package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/watchlist-screener/internal/scoring"
)

// Config holds the process-wide configuration loaded once at startup.
// Scoring defaults are just a caller-supplied configuration from the
// engine's point of view; nothing here mutates after Load.
type Config struct {
	ListenAddr  string
	APIKey      string
	DatabaseURL string
	RedisAddr   string
	CacheTTL    time.Duration
	MatchLimit  int
	Scoring     scoring.Config
}

// Load reads .env (if present) and the environment, then validates the
// scoring defaults. An invalid threshold configuration aborts startup.
func Load() (*Config, error) {
	// Silently skip a missing .env; the environment may carry everything.
	_ = godotenv.Load()

	sc := scoring.Default()
	sc.MatchThreshold = GetEnvFloat("SCREENER_MATCH_THRESHOLD", sc.MatchThreshold)
	sc.PossibleThreshold = GetEnvFloat("SCREENER_POSSIBLE_THRESHOLD", sc.PossibleThreshold)
	sc.IdentifierFloor = GetEnvFloat("SCREENER_IDENTIFIER_FLOOR", sc.IdentifierFloor)
	sc.MismatchMargin = GetEnvFloat("SCREENER_MISMATCH_MARGIN", sc.MismatchMargin)
	sc.YearDecay = GetEnvFloat("SCREENER_YEAR_DECAY", sc.YearDecay)
	sc.IncludeNoMatch = GetEnvBool("SCREENER_INCLUDE_NO_MATCH", false)
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		ListenAddr:  GetEnv("SCREENER_LISTEN", ":8080"),
		APIKey:      GetEnv("SCREENER_API_KEY", ""),
		DatabaseURL: GetEnv("SCREENER_DB_URL", "host=localhost port=5432 user=screener password=screener dbname=screener sslmode=disable"),
		RedisAddr:   GetEnv("SCREENER_REDIS_ADDR", ""),
		CacheTTL:    time.Duration(GetEnvInt("SCREENER_CACHE_TTL_SECONDS", 300)) * time.Second,
		MatchLimit:  GetEnvInt("SCREENER_MATCH_LIMIT", 10),
		Scoring:     sc,
	}, nil
}

// GetEnv gets environment variable with default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets integer environment variable with default
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvFloat gets float environment variable with default
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvBool gets boolean environment variable with default
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}
