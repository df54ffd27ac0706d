package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Tracing   TracingConfig   `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	RateLimit    int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	CORSOrigin   string        `mapstructure:"CORS_ORIGIN"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	Host            string        `mapstructure:"DATABASE_HOST"`
	Port            string        `mapstructure:"DATABASE_PORT"`
	Name            string        `mapstructure:"DATABASE_NAME"`
	User            string        `mapstructure:"DATABASE_USER"`
	Password        string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"REDIS_HOST"`
	Port     string        `mapstructure:"REDIS_PORT"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	CacheTTL time.Duration `mapstructure:"RESULT_CACHE_TTL"`
}

type AuthConfig struct {
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`
}

type SchedulerConfig struct {
	PurgeSpec     string `mapstructure:"HISTORY_PURGE_SPEC"`
	RetentionDays int    `mapstructure:"HISTORY_RETENTION_DAYS"`
	Timezone      string `mapstructure:"SCHEDULER_TIMEZONE"`
	MetricsPort   string `mapstructure:"SCHEDULER_METRICS_PORT"`
}

type LoggingConfig struct {
	Level string `mapstructure:"LOG_LEVEL"`
}

type BusinessConfig struct {
	MaxPrincipal       float64 `mapstructure:"MAX_PRINCIPAL"`
	MaxRate            float64 `mapstructure:"MAX_RATE"`
	MaxTenureMonths    int     `mapstructure:"MAX_TENURE_MONTHS"`
	DefaultHistorySize int     `mapstructure:"DEFAULT_HISTORY_LIMIT"`
	MaxHistorySize     int     `mapstructure:"MAX_HISTORY_LIMIT"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"OTEL_ENDPOINT"`
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Upper bounds keep installments and totals inside the NUMERIC(20,2) and
// NUMERIC(22,2) money columns.
const (
	maxPrincipalCeiling float64 = 1e15
	maxRateCeiling      float64 = 1000
)

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "fintrack")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RESULT_CACHE_TTL", "24h")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("HISTORY_PURGE_SPEC", "0 0 0 * * *")
	v.SetDefault("HISTORY_RETENTION_DAYS", 365)
	v.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	v.SetDefault("SCHEDULER_METRICS_PORT", "9091")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_PRINCIPAL", 1e9)
	v.SetDefault("MAX_RATE", 100)
	v.SetDefault("MAX_TENURE_MONTHS", 600)
	v.SetDefault("DEFAULT_HISTORY_LIMIT", 20)
	v.SetDefault("MAX_HISTORY_LIMIT", 100)
	v.SetDefault("OTEL_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "fintrack")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Load .env into the process environment (optional)
	_ = godotenv.Load()

	// Read from environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
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

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Business.MaxPrincipal <= 0 || c.Business.MaxPrincipal > maxPrincipalCeiling {
		return fmt.Errorf("MAX_PRINCIPAL must be between 0 and %g", maxPrincipalCeiling)
	}

	if c.Business.MaxRate < 0 || c.Business.MaxRate > maxRateCeiling {
		return fmt.Errorf("MAX_RATE must be between 0 and %g", maxRateCeiling)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	if c.IsProduction() && c.Server.CORSOrigin == "*" {
		return fmt.Errorf("CORS_ORIGIN must name an origin in production")
	}

	if c.Business.MaxTenureMonths <= 0 {
		return fmt.Errorf("MAX_TENURE_MONTHS must be greater than 0")
	}

	if c.Business.DefaultHistorySize <= 0 || c.Business.DefaultHistorySize > c.Business.MaxHistorySize {
		return fmt.Errorf("DEFAULT_HISTORY_LIMIT must be between 1 and MAX_HISTORY_LIMIT")
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be greater than 0")
	}

	if c.Server.RateWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	if c.Scheduler.RetentionDays < 0 {
		return fmt.Errorf("HISTORY_RETENTION_DAYS must not be negative")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	return nil
}

// DSN returns the Postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// LogRequests reports whether every HTTP request is logged. Development
// always logs; otherwise only the debug and info levels do.
func (c *Config) LogRequests() bool {
	if c.IsDevelopment() {
		return true
	}
	return c.Logging.Level == "debug" || c.Logging.Level == "info"
}

// Debug reports whether debug logging is enabled
func (c *Config) Debug() bool {
	return c.Logging.Level == "debug"
}

// GetRetention returns how long EMI history is kept, 0 meaning forever
func (c *Config) GetRetention() time.Duration {
	return time.Duration(c.Scheduler.RetentionDays) * 24 * time.Hour
}

// GetSchedulerLocation returns the scheduler timezone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
