package handler

import (
	"net/http"

	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/service"
	"github.com/labstack/echo/v4"
)

// StaffHandler serves the staff administration endpoints. Role checks
// happen in the router group.
type StaffHandler struct {
	Handler
	staff *service.StaffService
}

func NewStaffHandler(s *server.Server, staff *service.StaffService) *StaffHandler {
	return &StaffHandler{
		Handler: NewHandler(s),
		staff:   staff,
	}
}

func (h *StaffHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, q *user.ListStaffQuery) (*user.StaffPage, error) {
		return h.staff.List(c.Request().Context(), q)
	}, http.StatusOK, &user.ListStaffQuery{})
}

func (h *StaffHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.StaffIDRequest) (*user.StaffResponse, error) {
		return h.staff.Get(c.Request().Context(), req.ID)
	}, http.StatusOK, &user.StaffIDRequest{})
}

func (h *StaffHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.CreateStaffRequest) (*user.CreatedStaff, error) {
		return h.staff.Create(c.Request().Context(), middleware.GetSessionUser(c), req)
	}, http.StatusCreated, &user.CreateStaffRequest{})
}

func (h *StaffHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.UpdateStaffRequest) (*model.OK, error) {
		return h.staff.Update(c.Request().Context(), req)
	}, http.StatusOK, &user.UpdateStaffRequest{})
}

func (h *StaffHandler) Delete() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.StaffIDRequest) (*model.OK, error) {
		return h.staff.Delete(c.Request().Context(), req.ID)
	}, http.StatusOK, &user.StaffIDRequest{})
}

func (h *StaffHandler) Roles() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*model.ListResponse[user.Role], error) {
		return h.staff.Roles(c.Request().Context())
	}, http.StatusOK, &model.EmptyRequest{})
}

func (h *StaffHandler) GrantRole() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.GrantRoleRequest) (*model.OK, error) {
		return h.staff.GrantRole(c.Request().Context(), middleware.GetSessionUser(c), req)
	}, http.StatusOK, &user.GrantRoleRequest{})
}

func (h *StaffHandler) RevokeRole() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *user.RevokeRoleRequest) (*model.OK, error) {
		return h.staff.RevokeRole(c.Request().Context(), middleware.GetSessionUser(c), req)
	}, http.StatusOK, &user.RevokeRoleRequest{})
}
