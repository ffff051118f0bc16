package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct {
	// Username/Password are the static credential pair accepted when no
	// Matrix homeserver is configured.
	Username string
	Password string
	// MatrixURL, when set, delegates credential verification to a Matrix
	// homeserver login call.
	MatrixURL     string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_DSN", "data/journal.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SESSION_SWEEP_INTERVAL", "1h")

	ttl, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}
	sweep, err := time.ParseDuration(viper.GetString("SESSION_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid session sweep interval: %w", err)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			DSN: viper.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			Username:      viper.GetString("AUTH_USERNAME"),
			Password:      viper.GetString("AUTH_PASSWORD"),
			MatrixURL:     viper.GetString("MATRIX_HOMESERVER_URL"),
			SessionTTL:    ttl,
			SweepInterval: sweep,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.Auth.MatrixURL == "" && (cfg.Auth.Username == "" || cfg.Auth.Password == "") {
		return nil, fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD are required when no Matrix homeserver is configured")
	}

	return cfg, nil
}
