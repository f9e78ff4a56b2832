package middleware

import (
	"net/http"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows the configured front-end origins. Credentials are allowed so
// the session cookie is sent cross-origin.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     global.server.Config.Server.CORSAllowedOrigins,
		AllowCredentials: true,
		ExposeHeaders:    []string{RequestIDHeader, echo.HeaderContentDisposition},
	})
}

// statusFromError derives the final status of a failed request. The error
// handler writes the response after the logger has run.
func statusFromError(err error, status int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	case err != nil:
		if errors.As(sqlerr.HandleError(err), &httpErr) {
			return httpErr.Status
		}
		return http.StatusInternalServerError
	}
	return status
}

// RequestLogger writes one "API" line per request, levelled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := statusFromError(v.Error, v.Status)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}
			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns every error into the JSON error body. Errors that
// are not already HTTP errors go through sqlerr; anything unrecognised is a
// 500 "Error interno".
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Ruta no encontrada", true, nil)
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var (
		echoErr *echo.HTTPError
		body    errs.Response
	)

	switch {
	case errors.As(err, &httpErr):
		body = httpErr.ToResponse()

	case errors.As(err, &echoErr):
		body = errs.Response{
			Code:   errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Status: echoErr.Code,
			Error:  http.StatusText(echoErr.Code),
		}
		if msg, ok := echoErr.Message.(string); ok {
			body.Error = msg
		}

	default:
		body = errs.NewInternalServerError().ToResponse()
	}

	logger := GetLogger(c)

	var event *zerolog.Event
	if body.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	event.
		Err(originalErr).
		Int("status", body.Status).
		Str("error_code", body.Code).
		Msg(body.Error)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(body.Status)
		return
	}
	_ = c.JSON(body.Status, body)
}
