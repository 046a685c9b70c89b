// Package config reads process settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/joho/godotenv"
)

// MinSessionSecretLength is the shortest SESSION_SECRET accepted.
const MinSessionSecretLength = 32

const (
	CartStoragePostgres = "postgres"
	CartStorageDynamo   = "dynamodb"
	CartStorageMemory   = "memory"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	WebDir      string

	CartStorage     string
	DynamoCartTable string
	AWSRegion       string
	S3Bucket        string
	S3PublicBaseURL string

	KafkaBrokers    []string
	KafkaTopic      string
	NotifierGroupID string

	SessionSecret string
	SecureCookies bool
	OrderPrefix   string

	SMTPHost   string
	SMTPPort   string
	SMTPFrom   string
	AdminEmail string
}

// Load reads a .env file from the working directory if there is one, then
// the environment. Variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] Failed to read .env: %v", err)
	}

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		WebDir:          os.Getenv("WEB_DIR"),
		CartStorage:     strings.ToLower(getEnv("CART_STORAGE", CartStoragePostgres)),
		DynamoCartTable: getEnv("DYNAMODB_CART_TABLE", "luxa-carts"),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-3"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "luxa-orders"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		OrderPrefix:     getEnv("ORDER_PREFIX", "LUX"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPFrom:        getEnv("SMTP_FROM", "boutique@luxa.dz"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		NotifierGroupID: getEnv("NOTIFIER_GROUP_ID", "luxa-notifier"),
		SecureCookies:   getEnv("SECURE_COOKIES", "true") != "false",
	}
}

// ValidateAPI checks the settings the HTTP API cannot start without.
func (c *Config) ValidateAPI() error {
	if c.DatabaseURL == "" {
		return apperr.Configuration("DATABASE_URL is required")
	}
	if c.SessionSecret == "" {
		return apperr.Configuration("SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < MinSessionSecretLength {
		return apperr.Configuration(fmt.Sprintf("SESSION_SECRET must be at least %d characters long", MinSessionSecretLength))
	}
	switch c.CartStorage {
	case CartStoragePostgres, CartStorageMemory:
	case CartStorageDynamo:
		if c.DynamoCartTable == "" {
			return apperr.Configuration("DYNAMODB_CART_TABLE is required when CART_STORAGE=dynamodb")
		}
	default:
		return apperr.Configuration(fmt.Sprintf("unknown CART_STORAGE %q", c.CartStorage))
	}
	return nil
}

// ValidateNotifier checks the settings the order notifier needs.
func (c *Config) ValidateNotifier() error {
	if len(c.KafkaBrokers) == 0 {
		return apperr.Configuration("KAFKA_BROKERS is required")
	}
	if c.AdminEmail == "" {
		return apperr.Configuration("ADMIN_EMAIL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
