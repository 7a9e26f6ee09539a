package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DATABASE_HOST"`
	Port     string `mapstructure:"DATABASE_PORT"`
	Name     string `mapstructure:"DATABASE_NAME"`
	User     string `mapstructure:"DATABASE_USER"`
	Password string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode  string `mapstructure:"DATABASE_SSLMODE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	OverdueSpec  string `mapstructure:"SCHEDULER_OVERDUE_SPEC"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	ProfileStorageKey string `mapstructure:"PROFILE_STORAGE_KEY"`
	FeeRate           string `mapstructure:"FEE_RATE"`
	ProcessingDelay   string `mapstructure:"PROCESSING_DELAY"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "lending")
	viper.SetDefault("DATABASE_USER", "lending")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("PROFILE_STORAGE_KEY", "ec1000_user")
	viper.SetDefault("FEE_RATE", "0.01")
	viper.SetDefault("PROCESSING_DELAY", "2500ms")
	viper.SetDefault("SCHEDULER_REMINDER_SPEC", "0 0 9 * * *")
	viper.SetDefault("SCHEDULER_OVERDUE_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Business.ProfileStorageKey == "" {
		return fmt.Errorf("PROFILE_STORAGE_KEY is required")
	}

	// Validate fee rate
	rate, err := decimal.NewFromString(c.Business.FeeRate)
	if err != nil {
		return fmt.Errorf("FEE_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("FEE_RATE must not be negative")
	}

	// Validate processing delay
	if _, err := time.ParseDuration(c.Business.ProcessingDelay); err != nil {
		return fmt.Errorf("PROCESSING_DELAY must be a valid duration: %w", err)
	}

	// Validate health check timeout
	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

// GetFeeRate returns the processing fee rate as decimal
func (c *Config) GetFeeRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.FeeRate)
	return rate
}

// GetProcessingDelay returns the simulated disbursal delay as duration
func (c *Config) GetProcessingDelay() time.Duration {
	delay, _ := time.ParseDuration(c.Business.ProcessingDelay)
	return delay
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
