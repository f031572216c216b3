package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	MongoDBURI string
	JWTSecret  string

	RedisAddr     string
	RedisPassword string
	AMQPURL       string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	UploadDir   string
	CORSOrigins []string
}

func LoadConfig() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %v", err)
	}

	cfg := &Config{
		Port:          getEnvWithDefault("PORT", "8080"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		MongoDBURI:    os.Getenv("MONGODB_URI"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AMQPURL:       os.Getenv("RABBITMQ_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      getEnvWithDefault("MAIL_FROM", os.Getenv("SMTP_USER")),
		UploadDir:     getEnvWithDefault("UPLOAD_DIR", "uploads"),
		CORSOrigins:   []string{getEnvWithDefault("CORS_ORIGIN", "http://localhost:3000")},
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// MailConfigured reports whether outbound mail credentials are present.
// Confirmation emails are skipped, never failed, when they are not.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}
