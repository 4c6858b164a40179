// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
	Storage         Storage
}

// Storage selects and addresses the backing store.
type Storage struct {
	Driver     string
	User       string
	Password   string
	Database   string
	Host       string
	Port       string
	SSLMode    string
	SQLitePath string
}

// Load reads the given dotenv files (".env" when none is given) and then the
// environment. Missing files are ignored; variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	level, err := parseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        level,
		Storage: Storage{
			Driver:     getenv("STORAGE_DRIVER", "postgres"),
			User:       getenv("POSTGRES_USER", "inventory"),
			Password:   getenv("POSTGRES_PASSWORD", ""),
			Database:   getenv("POSTGRES_DB", "inventory"),
			Host:       getenv("POSTGRES_HOST", "localhost"),
			Port:       getenv("POSTGRES_PORT", "5432"),
			SSLMode:    getenv("POSTGRES_SSLMODE", "disable"),
			SQLitePath: getenv("SQLITE_PATH", "inventory.db"),
		},
	}, nil
}

// PostgresDSN is the key/value connection string understood by both pgx and lib/pq.
func (s Storage) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Database, s.SSLMode)
}

// DSN returns the connection string for the configured driver.
func (s Storage) DSN() string {
	if s.Driver == "sqlite" {
		return s.SQLitePath
	}
	return s.PostgresDSN()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
