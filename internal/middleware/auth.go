package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/labstack/echo/v4"
)

// SessionAuthenticator resolves a raw session token into an identity.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*user.SessionUser, error)
}

type AuthMiddleware struct {
	server   *server.Server
	sessions SessionAuthenticator
}

func NewAuthMiddleware(s *server.Server, sessions SessionAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		sessions: sessions,
	}
}

func (auth *AuthMiddleware) cookieName() string {
	return auth.server.Config.Session.CookieName
}

// RequireSession resolves the session cookie and stores the identity on the
// echo context. A missing or invalid session is a 401 with a
// WWW-Authenticate challenge.
func (auth *AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		var token string
		if cookie, err := c.Cookie(auth.cookieName()); err == nil {
			token = cookie.Value
		}

		su, err := auth.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			var httpErr *errs.HTTPError
			if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="`+auth.cookieName()+`"`)
			}

			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireSession").
				Dur("duration", time.Since(start)).
				Msg("session rejected")
			return err
		}

		setSessionUser(c, su)

		GetLogger(c).Debug().
			Str("function", "RequireSession").
			Dur("duration", time.Since(start)).
			Msg("session resolved")

		return next(c)
	}
}

// RequireAnyRole allows the request through when the session user holds at
// least one of roles. It must run after RequireSession.
func (auth *AuthMiddleware) RequireAnyRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			su := GetSessionUser(c)
			if su == nil {
				return errs.NewUnauthorizedError("No autenticado", true)
			}
			if !su.HasAnyRole(roles...) {
				GetLogger(c).Warn().
					Strs("required_roles", roles).
					Msg("role check failed")
				return errs.NewForbiddenError("No tienes permiso para realizar esta acción", true)
			}
			return next(c)
		}
	}
}

// GetSessionUser returns the identity stored by RequireSession, or nil.
func GetSessionUser(c echo.Context) *user.SessionUser {
	if su, ok := c.Get(SessionUserKey).(*user.SessionUser); ok {
		return su
	}
	return nil
}
