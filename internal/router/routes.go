package router

import (
	"github.com/deppfellow/mipp-portal/internal/handler"
	"github.com/labstack/echo/v4"
)

// requestEndpoints is satisfied by every instantiation of
// handler.RequestHandler.
type requestEndpoints interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	Pending() echo.HandlerFunc
	Get() echo.HandlerFunc
	Respond() echo.HandlerFunc
	PDF() echo.HandlerFunc
}

// registerRequestRoutes mounts the routes shared by the four request kinds.
// /pendientes is registered before /:id so the static segment wins.
func registerRequestRoutes(g *echo.Group, h requestEndpoints) {
	g.POST("", h.Create())
	g.GET("", h.List())
	g.GET("/pendientes", h.Pending())
	g.GET("/:id", h.Get())
	g.POST("/:id/responder", h.Respond())
	g.GET("/:id/pdf", h.PDF())
}

func registerAdminRoutes(g *echo.Group, h *handler.StaffHandler) {
	g.GET("/roles", h.Roles())

	staff := g.Group("/staff")
	staff.GET("", h.List())
	staff.POST("", h.Create())
	staff.GET("/:id", h.Get())
	staff.PUT("/:id", h.Update())
	staff.DELETE("/:id", h.Delete())
	staff.POST("/:id/roles", h.GrantRole())
	staff.DELETE("/:id/roles/:slug", h.RevokeRole())
}
