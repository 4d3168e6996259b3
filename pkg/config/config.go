package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	// Scrape timeout is kept short so one slow third-party site
	// cannot stall job creation.
	ScrapeTimeoutSeconds int

	UploadDir     string
	PublicBaseURL string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "jobtrack"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 7*24*60),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "openai/gpt-4o"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "jobtrack"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		ScrapeTimeoutSeconds: getEnvInt("SCRAPE_TIMEOUT_SECONDS", 8),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
