package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, 600, cfg.Business.MaxTenureMonths)
	assert.Equal(t, 1e9, cfg.Business.MaxPrincipal)
	assert.Equal(t, 20, cfg.Business.DefaultHistorySize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 365*24*time.Hour, cfg.GetRetention())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "9091", cfg.Scheduler.MetricsPort)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("MAX_TENURE_MONTHS", "360")
	t.Setenv("MAX_RATE", "45.5")
	t.Setenv("RESULT_CACHE_TTL", "30m")
	t.Setenv("DATABASE_URL", "postgres://fintrack@db/fintrack")
	t.Setenv("HISTORY_RETENTION_DAYS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 360, cfg.Business.MaxTenureMonths)
	assert.Equal(t, 45.5, cfg.Business.MaxRate)
	assert.Equal(t, 30*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "postgres://fintrack@db/fintrack", cfg.Database.DSN())
	assert.Equal(t, time.Duration(0), cfg.GetRetention())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non positive tenure limit", key: "MAX_TENURE_MONTHS", value: "0"},
		{name: "non positive principal limit", key: "MAX_PRINCIPAL", value: "-1"},
		{name: "history default above max", key: "DEFAULT_HISTORY_LIMIT", value: "500"},
		{name: "negative retention", key: "HISTORY_RETENTION_DAYS", value: "-3"},
		{name: "unknown timezone", key: "SCHEDULER_TIMEZONE", value: "Mars/Olympus"},
		{name: "rate ceiling above column range", key: "MAX_RATE", value: "1500"},
		{name: "principal limit above column range", key: "MAX_PRINCIPAL", value: "1e18"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "fintrack",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=fintrack sslmode=disable", d.DSN())
}

func TestLoad_WildcardCORSInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ORIGIN", "*")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "CORS_ORIGIN")
}

func TestConfig_LogRequests(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		level    string
		expected bool
		debug    bool
	}{
		{name: "development logs regardless of level", env: "development", level: "error", expected: true},
		{name: "production info", env: "production", level: "info", expected: true},
		{name: "production debug", env: "production", level: "debug", expected: true, debug: true},
		{name: "production warn", env: "production", level: "warn", expected: false},
		{name: "production error", env: "production", level: "error", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:  ServerConfig{Env: tt.env},
				Logging: LoggingConfig{Level: tt.level},
			}

			assert.Equal(t, tt.expected, cfg.LogRequests())
			assert.Equal(t, tt.debug, cfg.Debug())
		})
	}
}
