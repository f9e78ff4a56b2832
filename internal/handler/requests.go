package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/validation"
	"github.com/labstack/echo/v4"
)

// RequestService is implemented by the four request workflows. C is the
// create DTO, R the stored row and D the detail view.
type RequestService[C validation.Validatable, R any, D any] interface {
	Create(ctx context.Context, su *user.SessionUser, req C) (*model.Created, error)
	List(ctx context.Context, su *user.SessionUser, q *model.ListQuery) (*model.PaginatedResponse[R], error)
	Pending(ctx context.Context, su *user.SessionUser) (*model.ListResponse[R], error)
	Get(ctx context.Context, su *user.SessionUser, id int64) (D, error)
	Respond(ctx context.Context, su *user.SessionUser, req *model.RespondRequest) (*model.OK, error)
	PDF(ctx context.Context, su *user.SessionUser, id int64) (*model.File, error)
}

// RequestHandler serves the endpoints shared by solicitudes,
// justificaciones, omisiones and infrastructure reports.
type RequestHandler[C validation.Validatable, R any, D any] struct {
	Handler
	service RequestService[C, R, D]
}

func NewRequestHandler[C validation.Validatable, R any, D any](s *server.Server, svc RequestService[C, R, D]) *RequestHandler[C, R, D] {
	return &RequestHandler[C, R, D]{
		Handler: NewHandler(s),
		service: svc,
	}
}

func (h *RequestHandler[C, R, D]) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req C) (*model.Created, error) {
		return h.service.Create(c.Request().Context(), middleware.GetSessionUser(c), req)
	}, http.StatusCreated, *new(C))
}

func (h *RequestHandler[C, R, D]) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, q *model.ListQuery) (*model.PaginatedResponse[R], error) {
		return h.service.List(c.Request().Context(), middleware.GetSessionUser(c), q)
	}, http.StatusOK, &model.ListQuery{})
}

func (h *RequestHandler[C, R, D]) Pending() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*model.ListResponse[R], error) {
		return h.service.Pending(c.Request().Context(), middleware.GetSessionUser(c))
	}, http.StatusOK, &model.EmptyRequest{})
}

func (h *RequestHandler[C, R, D]) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.IDRequest) (D, error) {
		return h.service.Get(c.Request().Context(), middleware.GetSessionUser(c), req.ID)
	}, http.StatusOK, &model.IDRequest{})
}

func (h *RequestHandler[C, R, D]) Respond() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.RespondRequest) (*model.OK, error) {
		return h.service.Respond(c.Request().Context(), middleware.GetSessionUser(c), req)
	}, http.StatusOK, &model.RespondRequest{})
}

func (h *RequestHandler[C, R, D]) PDF() echo.HandlerFunc {
	return HandleFile(h.Handler, func(c echo.Context, req *model.IDRequest) (*model.File, error) {
		return h.service.PDF(c.Request().Context(), middleware.GetSessionUser(c), req.ID)
	}, http.StatusOK, &model.IDRequest{})
}
