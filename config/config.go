package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	ActivationSecret string // signs the short-lived registration token
	ForgotSecret     string // signs password reset tokens

	EmailSender string
	SendGridKey string

	MidtransServerKey string
	MidtransEnv       string // "sandbox" or "production"

	ChatApiUrl string
	ChatApiKey string
	ChatModel  string

	FrontendURL string
	UploadDir   string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ActivationSecret: getEnv("ACTIVATION_SECRET", "defaultActivationSecret"),
		ForgotSecret:     getEnv("FORGOT_SECRET", "defaultForgotSecret"),

		EmailSender: getEnv("EMAIL_SENDER", "noreply@learnhub.local"),
		SendGridKey: getEnv("SENDGRID_API_KEY", ""),

		MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransEnv:       getEnv("MIDTRANS_ENV", "sandbox"),

		ChatApiUrl: getEnv("CHAT_API_URL", "https://api.openai.com/v1/chat/completions"),
		ChatApiKey: getEnv("CHAT_API_KEY", ""),
		ChatModel:  getEnv("CHAT_MODEL", "gpt-4o-mini"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MidtransServerKey == "" {
		log.Println("Warning: MIDTRANS_SERVER_KEY is empty. Checkout will fail until it is set.")
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
