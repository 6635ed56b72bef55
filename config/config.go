// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the application configuration.
type Config struct {
	Env         string
	Port        int
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBPath      string
	AutoMigrate bool
	DBDebug     bool
	CORSOrigins string
}

// Load reads the configuration from the process environment. A .env file in
// the working directory is applied first when present; variables that are
// already set win over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using lookup to resolve variables.
func FromEnv(lookup func(string) string) (Config, error) {
	get := func(key, defaultValue string) string {
		if value := strings.TrimSpace(lookup(key)); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := Config{
		Env:         strings.ToLower(get("APP_ENV", get("NODE_ENV", EnvDevelopment))),
		DatabaseURL: get("DATABASE_URL", ""),
		DBHost:      get("DB_HOST", ""),
		DBUser:      get("DB_USER", "postgres"),
		DBPassword:  get("DB_PASSWORD", ""),
		DBName:      get("DB_NAME", "task_management"),
		DBPath:      get("DB_PATH", "tasks.db"),
		CORSOrigins: get("CORS_ALLOWED_ORIGINS", "*"),
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("invalid APP_ENV %q: must be %s or %s", cfg.Env, EnvDevelopment, EnvProduction)
	}

	var err error
	if cfg.Port, err = parsePort("PORT", get("PORT", "5000")); err != nil {
		return Config{}, err
	}
	if cfg.DBPort, err = parsePort("DB_PORT", get("DB_PORT", "5432")); err != nil {
		return Config{}, err
	}
	if cfg.AutoMigrate, err = parseBool("DB_AUTO_MIGRATE", get("DB_AUTO_MIGRATE", strconv.FormatBool(!cfg.IsProduction()))); err != nil {
		return Config{}, err
	}
	if cfg.DBDebug, err = parseBool("DB_DEBUG", get("DB_DEBUG", "false")); err != nil {
		return Config{}, err
	}

	defaultDriver := DriverSQLite
	if cfg.DatabaseURL != "" || cfg.DBHost != "" {
		defaultDriver = DriverPostgres
	}
	cfg.DBDriver = strings.ToLower(get("DB_DRIVER", defaultDriver))
	if cfg.DBDriver == "postgresql" {
		cfg.DBDriver = DriverPostgres
	}
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", cfg.DBDriver, DriverSQLite, DriverPostgres)
	}
	if cfg.DBDriver == DriverPostgres && cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}

	return cfg, nil
}

// IsProduction reports whether the application runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// ListenAddr returns the HTTP listen address.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PostgresDSN returns the connection string for the Postgres store. The
// discrete DB_* settings are used when DATABASE_URL is empty. Production
// requires SSL unless the URL already chooses a mode.
func (c Config) PostgresDSN() (string, error) {
	sslMode := "disable"
	if c.IsProduction() {
		sslMode = "require"
	}

	var u *url.URL
	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
			return "", fmt.Errorf("invalid DATABASE_URL scheme %q", parsed.Scheme)
		}
		u = parsed
	} else {
		u = &url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
			Path:   "/" + c.DBName,
		}
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", sslMode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parsePort(key, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid %s %q: must be a port number between 1 and 65535", key, value)
	}
	return port, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be true or false", key, value)
	}
	return b, nil
}
