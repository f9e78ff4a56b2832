package middleware

import (
	"strings"

	"github.com/deppfellow/mipp-portal/internal/logger"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	UserIDKey      = "user_id"
	UserCedulaKey  = "user_cedula"
	SessionUserKey = "session_user"
	LoggerKey      = "logger"
)

// ContextEnhancer builds the request-scoped logger. The logger is stored on
// the echo context for handlers and in the request context for services,
// which read it with zerolog.Ctx.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if su := GetSessionUser(c); su != nil {
				contextLogger = withUser(contextLogger, su)
			}

			storeLogger(c, contextLogger)

			return next(c)
		}
	}
}

func storeLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

func withUser(l zerolog.Logger, su *user.SessionUser) zerolog.Logger {
	return l.With().
		Str("user_id", su.User.ID.String()).
		Str("user_cedula", su.User.Cedula).
		Str("user_roles", strings.Join(su.Roles, ",")).
		Logger()
}

// setSessionUser stores the identity and tags the request logger with it.
func setSessionUser(c echo.Context, su *user.SessionUser) {
	c.Set(SessionUserKey, su)
	c.Set(UserIDKey, su.User.ID.String())
	c.Set(UserCedulaKey, su.User.Cedula)

	storeLogger(c, withUser(*GetLogger(c), su))
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
