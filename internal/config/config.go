// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), maps them into structured Go types and validates that the
// required values exist so the portal fails fast on bad configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before it is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by every variable the portal reads.
// Nesting uses ".", e.g. MIPP_SERVER.PORT -> server.port -> Config.Server.Port.
const EnvPrefix = "MIPP_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Session       SessionConfig        `koanf:"session"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Portal        PortalConfig         `koanf:"portal"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// SessionConfig controls how session cookies are resolved and cached.
//
// Sessions are issued by the login service; this process only validates them.
type SessionConfig struct {
	// CookieName is the cookie carrying the opaque session token.
	CookieName string `koanf:"cookie_name"`

	// CacheTTL bounds how long a resolved session stays in Redis.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// DefaultPassword is assigned to new staff and to resets. Users are
	// forced to change it on next login.
	DefaultPassword string `koanf:"default_password"`

	// PurgeAfter is how long expired or revoked sessions are kept before the
	// background purge removes them.
	PurgeAfter time.Duration `koanf:"purge_after"`
}

// IntegrationConfig stores credentials for third-party services.
type IntegrationConfig struct {
	// ResendAPIKey enables e-mail notices. Empty disables sending.
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// PortalConfig holds institution-level settings.
type PortalConfig struct {
	Institution string `koanf:"institution"`
	TimeZone    string `koanf:"time_zone"`

	// RateLimit is the number of API requests per second allowed per client IP.
	RateLimit float64 `koanf:"rate_limit"`
}

// LoadConfig loads configuration from environment variables, validates it and
// applies defaults for the optional blocks.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-configurable so telemetry
	// always lines up with the deployment.
	mainConfig.Observability.ServiceName = "mipp-portal"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session_token"
	}
	if c.Session.CacheTTL <= 0 {
		c.Session.CacheTTL = 5 * time.Minute
	}
	if c.Session.DefaultPassword == "" {
		c.Session.DefaultPassword = "admin123"
	}
	if c.Session.PurgeAfter <= 0 {
		c.Session.PurgeAfter = 7 * 24 * time.Hour
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "MIPP+ <notificaciones@resend.dev>"
	}
	if c.Portal.Institution == "" {
		c.Portal.Institution = "CTP Mercedes Norte"
	}
	if c.Portal.TimeZone == "" {
		c.Portal.TimeZone = "America/Costa_Rica"
	}
	if c.Portal.RateLimit <= 0 {
		c.Portal.RateLimit = 20
	}
}

// IsLocal reports whether the process runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
