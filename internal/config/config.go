package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Inventory backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Inventory InventoryConfig
	Documents DocumentConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	S3        S3Config
}

// InventoryConfig selects where the product list is kept.
type InventoryConfig struct {
	Backend string `env:"INVENTORY_BACKEND" envDefault:"file"`
	File    string `env:"INVENTORY_FILE" envDefault:"inventory.txt"`
}

// DocumentConfig holds settings for generated invoices and purchase forms.
type DocumentConfig struct {
	Dir    string `env:"DOCUMENT_DIR" envDefault:"."`
	Header string `env:"DOCUMENT_HEADER" envDefault:"WeCare BEAUTY PRODUCTS"`
}

// StoreConfig holds the shop identity printed on banners and documents.
type StoreConfig struct {
	Name    string `env:"STORE_NAME" envDefault:"WeCare Beauty Products"`
	Address string `env:"STORE_ADDRESS" envDefault:"Kamalpokhari, Kathmandu | Phone No: 9761625564"`
}

// DatabaseConfig holds database-related configuration.
// Only used when the inventory backend is postgres.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" envDefault:"wecare"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"4"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
	ConnectTimeout  int    `env:"DB_CONNECT_TIMEOUT" envDefault:"5"`     // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`     // "json" or "console"
	File   string `env:"LOG_FILE" envDefault:"wecare.log"` // "-" logs to stderr

	// Rotation settings for File.
	MaxSizeMB  int `env:"LOG_MAX_SIZE_MB" envDefault:"64"`
	MaxBackups int `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays int `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
}

// S3Config holds AWS S3 configuration for archiving generated documents.
type S3Config struct {
	Enabled bool   `env:"S3_ENABLED" envDefault:"false"`
	Bucket  string `env:"S3_BUCKET"`
	Region  string `env:"S3_REGION" envDefault:"us-east-1"`
	Prefix  string `env:"S3_PREFIX" envDefault:"documents/"` // Path prefix within bucket
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Inventory.Backend {
	case BackendFile:
		if c.Inventory.File == "" {
			return fmt.Errorf("inventory file is required for the file backend")
		}
	case BackendPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid inventory backend: %s (must be file or postgres)", c.Inventory.Backend)
	}

	if c.Documents.Dir == "" {
		return fmt.Errorf("document directory is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Logger.MaxSizeMB < 1 {
		return fmt.Errorf("log max size must be at least 1 MB")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Validate validates the database settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.ConnectTimeout < 1 {
		return fmt.Errorf("database connect timeout must be at least 1 second")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}
