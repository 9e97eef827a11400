package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Addr          string
	DBUrl         string
	DBNs          string
	DBDb          string
	DBUser        string
	DBPass        string
	SessionSecret string

	// TranslatorURL is the base URL of the translation provider.
	TranslatorURL string
	// TranslatorTimeout bounds every translation call. The provider does
	// not enforce its own timeout, so this one is mandatory.
	TranslatorTimeout time.Duration
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DBUrl:             os.Getenv("SURREAL_URL"),
		DBUser:            os.Getenv("SURREAL_USER"),
		DBPass:            os.Getenv("SURREAL_PASS"),
		DBNs:              os.Getenv("SURREAL_NS"),
		DBDb:              os.Getenv("SURREAL_DB"),
		SessionSecret:     getEnv("SESSION_SECRET", "insecure-dev-secret"),
		TranslatorURL:     getEnv("TRANSLATOR_URL", "https://api.mymemory.translated.net"),
		TranslatorTimeout: getDuration("TRANSLATOR_TIMEOUT", 5*time.Second),
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
