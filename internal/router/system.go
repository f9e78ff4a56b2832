package router

import (
	"github.com/deppfellow/mipp-portal/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts endpoints that sit outside /api and need no
// session.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
