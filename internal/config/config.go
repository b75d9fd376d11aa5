package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	Store      StoreConfig      `json:"store"`
	Database   DatabaseConfig   `json:"database"`
	Logging    LoggingConfig    `json:"logging"`
	Security   SecurityConfig   `json:"security"`
	Validation ValidationConfig `json:"validation"`
}

// StoreConfig selects the persistence driver
type StoreConfig struct {
	Driver  string `json:"driver"` // jsonfile, postgres
	DataDir string `json:"data_dir"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"dbname"`
	SSLMode        string        `json:"sslmode"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // json, text
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	JWTSecret     string        `json:"jwt_secret"`
	JWTExpiration time.Duration `json:"jwt_expiration"`
	BcryptCost    int           `json:"bcrypt_cost"`
}

// ValidationConfig carries the change limits applied to budget edits
type ValidationConfig struct {
	ItemChangeLimit    float64 `json:"item_change_limit"`
	BalanceChangeLimit float64 `json:"balance_change_limit"`
}

// Load loads configuration from environment variables and defaults
func Load() (*Config, error) {
	config := &Config{
		Store: StoreConfig{
			Driver:  getEnv("STORE_DRIVER", "jsonfile"),
			DataDir: getEnv("STORE_DATA_DIR", "./data"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			DBName:         getEnv("DB_NAME", "govbudget"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			JWTExpiration: getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
			BcryptCost:    getEnvInt("BCRYPT_COST", 0),
		},
		Validation: ValidationConfig{
			ItemChangeLimit:    getEnvFloat("ITEM_CHANGE_LIMIT", 0.25),
			BalanceChangeLimit: getEnvFloat("BALANCE_CHANGE_LIMIT", 0.10),
		},
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "jsonfile":
		if c.Store.DataDir == "" {
			return fmt.Errorf("store data dir is required for the jsonfile driver")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}

	if c.Validation.ItemChangeLimit <= 0 || c.Validation.BalanceChangeLimit <= 0 {
		return fmt.Errorf("change limits must be positive")
	}

	return nil
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// Helper functions for environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
