package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	tokens map[string]*user.SessionUser
}

func (f *fakeSessions) Authenticate(_ context.Context, token string) (*user.SessionUser, error) {
	if su, ok := f.tokens[token]; ok {
		return su, nil
	}
	return nil, errs.NewUnauthorizedError("No autenticado", true)
}

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Session: config.SessionConfig{CookieName: "session_token"}},
		Logger: &logger,
	}
}

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var ana = &user.SessionUser{
	User:  user.User{ID: uuid.MustParse("2f1c6a9e-3b7d-4a53-9e21-7b0f6c1d2e3f"), Cedula: "112340567", Nombre: "Ana"},
	Roles: []string{user.RoleNormalUser},
}

func TestRequireSessionMissingCookie(t *testing.T) {
	auth := NewAuthMiddleware(testServer(), &fakeSessions{})
	c, rec := newTestContext(http.MethodGet, "/api/me")

	called := false
	err := auth.RequireSession(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "No autenticado", httpErr.Message)
	assert.Equal(t, `Bearer realm="session_token"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.False(t, called)
}

func TestRequireSessionResolvesUser(t *testing.T) {
	auth := NewAuthMiddleware(testServer(), &fakeSessions{tokens: map[string]*user.SessionUser{"tok": ana}})
	c, rec := newTestContext(http.MethodGet, "/api/me")
	c.Request().AddCookie(&http.Cookie{Name: "session_token", Value: "tok"})

	var seen *user.SessionUser
	err := auth.RequireSession(func(c echo.Context) error {
		seen = GetSessionUser(c)
		assert.NotNil(t, zerolog.Ctx(c.Request().Context()))
		return nil
	})(c)

	require.NoError(t, err)
	assert.Same(t, ana, seen)
	assert.Equal(t, ana.User.ID.String(), GetUserID(c))
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestRequireAnyRole(t *testing.T) {
	auth := NewAuthMiddleware(testServer(), &fakeSessions{})
	next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	c, _ := newTestContext(http.MethodGet, "/api/admin/staff")
	err := auth.RequireAnyRole(user.StaffAdministrators...)(next)(c)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)

	c, _ = newTestContext(http.MethodGet, "/api/admin/staff")
	c.Set(SessionUserKey, ana)
	err = auth.RequireAnyRole(user.StaffAdministrators...)(next)(c)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)

	c, rec := newTestContext(http.MethodGet, "/api/admin/staff")
	c.Set(SessionUserKey, &user.SessionUser{Roles: []string{user.RoleStaffManager}})
	require.NoError(t, auth.RequireAnyRole(user.StaffAdministrators...)(next)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) errs.Response {
	t.Helper()

	var body errs.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(testServer())

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"http error", errs.BadRequestField("fecha_inicio", "Fecha inválida"), http.StatusBadRequest, errs.CodeValidation, "Fecha inválida"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Ruta no encontrada"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed"},
		{"unique violation", &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_cedula_key"}, http.StatusBadRequest, "USERS_ALREADY_EXISTS", "Ya existe un usuario con esta cédula"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Error interno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/api/x")

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Error)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestGlobalErrorHandlerKeepsFieldErrors(t *testing.T) {
	global := NewGlobalMiddlewares(testServer())
	c, rec := newTestContext(http.MethodPost, "/api/solicitudes")

	global.GlobalErrorHandler(errs.BadRequestField("adjunto_url", "Adjunto requerido"), c)

	body := decodeBody(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "adjunto_url", body.Errors[0].Field)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(nil, http.StatusOK))
	assert.Equal(t, http.StatusForbidden, statusFromError(errs.NewForbiddenError("x", true), http.StatusOK))
	assert.Equal(t, http.StatusNotFound, statusFromError(echo.ErrNotFound, http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom"), http.StatusOK))
}

func TestRequestID(t *testing.T) {
	next := func(c echo.Context) error { return nil }

	c, rec := newTestContext(http.MethodGet, "/status")
	require.NoError(t, RequestID()(next)(c))
	generated := GetRequestID(c)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Header().Get(RequestIDHeader))

	c, _ = newTestContext(http.MethodGet, "/status")
	c.Request().Header.Set(RequestIDHeader, "abc-123")
	require.NoError(t, RequestID()(next)(c))
	assert.Equal(t, "abc-123", GetRequestID(c))
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	ce := NewContextEnhancer(testServer())
	c, _ := newTestContext(http.MethodGet, "/api/me")

	err := ce.EnhanceContext()(func(c echo.Context) error {
		assert.NotNil(t, c.Get(LoggerKey))
		return nil
	})(c)
	require.NoError(t, err)
}
