package handler

import (
	"net/http"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/middleware"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/labstack/echo/v4"
)

// MeHandler returns the identity behind the session cookie.
type MeHandler struct {
	Handler
}

func NewMeHandler(s *server.Server) *MeHandler {
	return &MeHandler{Handler: NewHandler(s)}
}

func (h *MeHandler) Me() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*user.MeResponse, error) {
		su := middleware.GetSessionUser(c)
		if su == nil {
			return nil, errs.NewUnauthorizedError("No autenticado", true)
		}

		roles := su.Roles
		if roles == nil {
			roles = []string{}
		}
		return &user.MeResponse{User: su.User, Roles: roles}, nil
	}, http.StatusOK, &model.EmptyRequest{})
}
