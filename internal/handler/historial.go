package handler

import (
	"net/http"

	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type HistorialHandler struct {
	Handler
	historial *service.HistorialService
}

func NewHistorialHandler(s *server.Server, historial *service.HistorialService) *HistorialHandler {
	return &HistorialHandler{
		Handler:   NewHandler(s),
		historial: historial,
	}
}

func (h *HistorialHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, q *model.HistorialQuery) (*model.HistorialResponse, error) {
		return h.historial.ForUser(c.Request().Context(), middleware.GetSessionUser(c), q)
	}, http.StatusOK, &model.HistorialQuery{})
}
