package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	DatabaseURL    string
	JWTSecret      string
	MigrationsPath string
	LogLevel       string
	AllowedOrigins []string

	Storage struct {
		BaseURL string
		Bucket  string
		APIKey  string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	storageURL := os.Getenv("STORAGE_URL")
	if storageURL == "" {
		return nil, fmt.Errorf("STORAGE_URL must be set")
	}

	storageBucket := os.Getenv("STORAGE_BUCKET")
	if storageBucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET must be set")
	}

	storageAPIKey := os.Getenv("STORAGE_API_KEY")
	if storageAPIKey == "" {
		return nil, fmt.Errorf("STORAGE_API_KEY must be set")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cfg := &Config{
		ServerPort:     serverPort,
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		MigrationsPath: migrationsPath,
		LogLevel:       logLevel,
		AllowedOrigins: origins,
	}
	cfg.Storage.BaseURL = storageURL
	cfg.Storage.Bucket = storageBucket
	cfg.Storage.APIKey = storageAPIKey

	return cfg, nil
}
