// Package router builds the echo instance: global middleware, the error
// handler, and every route group of the portal.
package router

import (
	"github.com/deppfellow/mipp-portal/internal/handler"
	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/service"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Sessions)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api", middlewares.RateLimit.Limit(), middlewares.Auth.RequireSession)

	api.GET("/me", h.Me.Me())
	api.GET("/historial", h.Historial.List())

	registerRequestRoutes(api.Group("/solicitudes"), h.Solicitudes)
	registerRequestRoutes(api.Group("/justificaciones"), h.Justificaciones)
	registerRequestRoutes(api.Group("/omisionmarca"), h.Omisiones)
	registerRequestRoutes(api.Group("/reporteinf"), h.Reportes)

	admin := api.Group("/admin", middlewares.Auth.RequireAnyRole(user.StaffAdministrators...))
	registerAdminRoutes(admin, h.Staff)

	return router
}
