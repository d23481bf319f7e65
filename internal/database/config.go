package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"watchboard/internal/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string

	// MigrationsURL is the golang-migrate source for the postgres schema.
	MigrationsURL string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		logger.Get().Warn(".env file not found, using environment variables")
	}

	cfg := &Config{
		Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          getEnv("DB_USER", "watchboard"),
		Password:      getEnv("DB_PASSWORD", "watchboard"),
		DBName:        getEnv("DB_NAME", "watchboard"),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "watchboard.db"),
		MigrationsURL: getEnv("MIGRATIONS_URL", "file://migrations"),
	}
	if cfg.Driver != DriverPostgres && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", cfg.Driver, DriverPostgres, DriverSQLite)
	}
	return cfg, nil
}

// DSN returns the gorm connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the postgres URL golang-migrate connects with.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
