// Package config loads server configuration from the environment.
//
// A .env file in the working directory is read first when present. Variables
// already set in the process environment take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	Port            int           // PORT
	DBPath          string        // DB_PATH, ":memory:" for a throwaway store
	LogLevel        string        // LOG_LEVEL
	LogFormat       string        // LOG_FORMAT
	TemplateDir     string        // TEMPLATE_DIR, empty disables the index page
	StaticDir       string        // STATIC_DIR, empty disables /static/
	CORSOrigin      string        // CORS_ORIGIN
	ShutdownTimeout time.Duration // SHUTDOWN_TIMEOUT
}

// Defaults returns the configuration used when no variable is set.
func Defaults() Config {
	return Config{
		Port:            3000,
		DBPath:          "data/exercise.db",
		LogLevel:        "info",
		LogFormat:       "text",
		TemplateDir:     "web/templates",
		StaticDir:       "web/static",
		CORSOrigin:      "*",
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load reads .env (if any) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Defaults.
// A PORT or SHUTDOWN_TIMEOUT that does not parse is an error rather than
// being silently replaced by the default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str("DB_PATH", &cfg.DBPath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("TEMPLATE_DIR", &cfg.TemplateDir)
	str("STATIC_DIR", &cfg.StaticDir)
	str("CORS_ORIGIN", &cfg.CORSOrigin)

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: invalid SHUTDOWN_TIMEOUT %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	if cfg.DBPath == "" {
		return Config{}, errors.New("config: DB_PATH must not be empty")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}

	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
