package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	Host         string        `mapstructure:"DATABASE_HOST"`
	Port         string        `mapstructure:"DATABASE_PORT"`
	Name         string        `mapstructure:"DATABASE_NAME"`
	User         string        `mapstructure:"DATABASE_USER"`
	Password     string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode      string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnLifetime time.Duration `mapstructure:"DATABASE_CONN_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	RefreshSpec string `mapstructure:"SCHEDULER_REFRESH_SPEC"`
	Timezone    string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// ScoringConfig tunes the scoring service around the engine. The factor
// weights and thresholds themselves are part of the model, not configuration.
type ScoringConfig struct {
	CacheTTL      string `mapstructure:"SCORE_CACHE_TTL"`
	DefaultLimit  int    `mapstructure:"SCORE_DEFAULT_LIMIT"`
	MaxLimit      int    `mapstructure:"SCORE_MAX_LIMIT"`
	ScanWidening  int    `mapstructure:"SCORE_SCAN_WIDENING"`
	WatchlistSize int    `mapstructure:"SCORE_WATCHLIST_SIZE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// DSN builds the Postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "partner_scoring")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_LIFETIME", "5m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("SCORE_CACHE_TTL", "1h")
	viper.SetDefault("SCORE_DEFAULT_LIMIT", 10)
	viper.SetDefault("SCORE_MAX_LIMIT", 100)
	viper.SetDefault("SCORE_SCAN_WIDENING", 2)
	viper.SetDefault("SCORE_WATCHLIST_SIZE", 10)
	viper.SetDefault("SCHEDULER_REFRESH_SPEC", "0 0 2 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Europe/Bucharest")
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

	if c.Database.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Scoring.DefaultLimit <= 0 {
		return fmt.Errorf("SCORE_DEFAULT_LIMIT must be greater than 0")
	}

	if c.Scoring.MaxLimit < c.Scoring.DefaultLimit {
		return fmt.Errorf("SCORE_MAX_LIMIT must be at least SCORE_DEFAULT_LIMIT")
	}

	if c.Scoring.ScanWidening < 1 {
		return fmt.Errorf("SCORE_SCAN_WIDENING must be at least 1")
	}

	if c.Scoring.WatchlistSize <= 0 {
		return fmt.Errorf("SCORE_WATCHLIST_SIZE must be greater than 0")
	}

	// Validate cache TTL
	if _, err := time.ParseDuration(c.Scoring.CacheTTL); err != nil {
		return fmt.Errorf("SCORE_CACHE_TTL must be a valid duration: %w", err)
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

// GetScoreCacheTTL returns the score cache TTL as duration
func (c *Config) GetScoreCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Scoring.CacheTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
