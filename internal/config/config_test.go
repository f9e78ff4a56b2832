package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"MIPP_PRIMARY.ENV":                     "local",
		"MIPP_SERVER.PORT":                     "8080",
		"MIPP_SERVER.READ_TIMEOUT":             "30",
		"MIPP_SERVER.WRITE_TIMEOUT":            "30",
		"MIPP_SERVER.IDLE_TIMEOUT":             "60",
		"MIPP_SERVER.CORS_ALLOWED_ORIGINS":     "http://localhost:3000",
		"MIPP_DATABASE.HOST":                   "localhost",
		"MIPP_DATABASE.PORT":                   "5432",
		"MIPP_DATABASE.USER":                   "mipp",
		"MIPP_DATABASE.PASSWORD":               "secret",
		"MIPP_DATABASE.NAME":                   "mipp",
		"MIPP_DATABASE.SSL_MODE":               "disable",
		"MIPP_DATABASE.MAX_OPEN_CONNS":         "10",
		"MIPP_DATABASE.MAX_IDLE_CONNS":         "2",
		"MIPP_DATABASE.CONN_MAX_LIFETIME":      "300",
		"MIPP_DATABASE.CONN_MAX_IDLE_TIME":     "60",
		"MIPP_REDIS.ADDRESS":                   "localhost:6379",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "session_token", cfg.Session.CookieName)
	assert.Equal(t, 5*time.Minute, cfg.Session.CacheTTL)
	assert.Equal(t, "America/Costa_Rica", cfg.Portal.TimeZone)
	assert.Equal(t, "CTP Mercedes Norte", cfg.Portal.Institution)
	assert.True(t, cfg.IsLocal())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "mipp-portal", cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoadConfigReadsSessionBlock(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MIPP_SESSION.COOKIE_NAME", "mipp_session")
	t.Setenv("MIPP_SESSION.CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mipp_session", cfg.Session.CookieName)
	assert.Equal(t, 90*time.Second, cfg.Session.CacheTTL)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MIPP_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "missing service", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.HealthCheckEnabled("database"))
	assert.True(t, c.HealthCheckEnabled("redis"))
	assert.False(t, c.HealthCheckEnabled("smtp"))

	c.HealthChecks.Enabled = false
	assert.False(t, c.HealthCheckEnabled("database"))
}
