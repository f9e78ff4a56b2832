package logger

import (
	"testing"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls := NewLoggerService(cfg)
	assert.Nil(t, ls.GetApplication())

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestNewLoggerWithServiceLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	l := NewLoggerWithService(cfg, NewLoggerService(cfg))
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	assert.Equal(t, l, WithTraceContext(l, nil))
}
