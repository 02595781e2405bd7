package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string
	Debug  bool

	ReservationTTLHours int // how long a certificate reservation is held
	LowStockThreshold   int // medal quantity at/below which alerts fire

	EmailSender string
	Password    string // SMTP Password
	AlertEmail  string // receiver for low stock alerts

	AuditWebhookURL string // downstream activity log sink, optional
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),
		Debug:  getEnv("APP_DEBUG", "false") == "true",

		ReservationTTLHours: getEnvInt("RESERVATION_TTL_HOURS", 24),
		LowStockThreshold:   getEnvInt("LOW_STOCK_THRESHOLD", 5),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
		AlertEmail:  getEnv("LOW_STOCK_ALERT_EMAIL", ""),

		AuditWebhookURL: getEnv("AUDIT_WEBHOOK_URL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ReservationTTLHours <= 0 {
		log.Println("Warning: RESERVATION_TTL_HOURS must be positive. Falling back to 24.")
		AppConfig.ReservationTTLHours = 24
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
