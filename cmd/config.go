package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	ImportPollInterval      time.Duration `env:"IMPORT_POLL_INTERVAL" envDefault:"30s"`
	ImportMaxBatchesPerTick int           `env:"IMPORT_MAX_BATCHES_PER_TICK" envDefault:"10"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads dotenvFiles (".env" when none are given) into the
// process environment without overriding variables already set, then parses
// the environment. Missing dotenv files are ignored.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN is the libpq connection string for both the gorm and the sqlx pool.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel, falling back to Info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
