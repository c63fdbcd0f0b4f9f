package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	DataDir     string
	BackupDir   string
	StaticDir   string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Deadline reminder job
	RemindersEnabled bool
	ReminderEmailTo  string
	// Sports ticker
	OddsAPIKey         string
	TickerUseFallback  bool // Serve the static payload only when explicitly enabled
	TickerRefreshSecs  int
	TickerFallbackPath string
	// Other
	AllowedOrigins []string
	// Cloudflare R2 backup mirror
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	staticDir := getEnv("STATIC_DIR", "static")

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DataDir:            getEnv("DATA_DIR", "data"),
		BackupDir:          getEnv("BACKUP_DIR", "data/backups"),
		StaticDir:          staticDir,
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@caseboard.local"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Caseboard"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		RemindersEnabled:   getEnvBool("DEADLINE_REMINDERS_ENABLED", false),
		ReminderEmailTo:    getEnv("REMINDER_EMAIL_TO", ""),
		OddsAPIKey:         getEnv("ODDS_API_KEY", ""),
		TickerUseFallback:  getEnvBool("CFB_USE_FALLBACK", false),
		TickerRefreshSecs:  getEnvInt("TICKER_REFRESH_SECONDS", 90),
		TickerFallbackPath: getEnv("TICKER_FALLBACK_PATH", staticDir+"/data/cfb.json"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
