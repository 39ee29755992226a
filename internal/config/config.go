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

const (
	StoreDriverPostgres  = "postgres"
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"
)

type Config struct {
	Database  DatabaseConfig
	Firestore FirestoreConfig
	JWT       JWTConfig
	App       AppConfig
	Admin     AdminConfig
	Report    ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	AppID           string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
	StoreDriver        string
}

type AdminConfig struct {
	// PasswordHash is a bcrypt hash. Empty disables admin login.
	PasswordHash string
}

type ReportConfig struct {
	// ResyncInterval of zero disables the periodic report resync.
	ResyncInterval time.Duration
}

// Load reads the configuration from the environment, after loading .env when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Firestore = FirestoreConfig{
		ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		CredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
		AppID:           getEnv("FIRESTORE_APP_ID", "default-app-id"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "Local"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	config.Admin = AdminConfig{
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	resyncInterval, err := time.ParseDuration(getEnv("REPORT_RESYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_RESYNC_INTERVAL: %w", err)
	}
	config.Report = ReportConfig{ResyncInterval: resyncInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if config.Admin.PasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Report.ResyncInterval < 0 {
		return fmt.Errorf("REPORT_RESYNC_INTERVAL must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.App.StoreDriver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.App.StoreDriver)
	}

	return nil
}

// Location returns the single location all report dates are rendered in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return loc, nil
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
