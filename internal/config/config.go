package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds hour-reconciliation tuning.
// StandardDailyHours is the shift length that caps the regular bucket;
// DefaultEntitlementHours is used for stat-holiday and leave days when
// the calendar does not carry its own entitlement.
type EngineConfig struct {
	StandardDailyHours      decimal.Decimal
	DefaultEntitlementHours decimal.Decimal
	ImportMaxRows           int
}

func Load() (*Config, error) {
	// .env is optional in deployed environments
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "attendance-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine configuration
	standardHours, err := decimal.NewFromString(getEnv("ENGINE_STANDARD_DAILY_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_STANDARD_DAILY_HOURS: %w", err)
	}
	entitlementHours, err := decimal.NewFromString(getEnv("ENGINE_DEFAULT_ENTITLEMENT_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_DEFAULT_ENTITLEMENT_HOURS: %w", err)
	}
	importMaxRows, err := strconv.Atoi(getEnv("ENGINE_IMPORT_MAX_ROWS", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_IMPORT_MAX_ROWS: %w", err)
	}

	config.Engine = EngineConfig{
		StandardDailyHours:      standardHours,
		DefaultEntitlementHours: entitlementHours,
		ImportMaxRows:           importMaxRows,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !c.Engine.StandardDailyHours.IsPositive() {
		return fmt.Errorf("ENGINE_STANDARD_DAILY_HOURS must be positive")
	}
	if c.Engine.DefaultEntitlementHours.IsNegative() {
		return fmt.Errorf("ENGINE_DEFAULT_ENTITLEMENT_HOURS must not be negative")
	}
	if c.Engine.ImportMaxRows <= 0 {
		return fmt.Errorf("ENGINE_IMPORT_MAX_ROWS must be positive")
	}
	return nil
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
