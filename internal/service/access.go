package service

import (
	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/model/user"
)

// access holds the role rules of one request kind.
type access struct {
	managers []string
	readers  []string
}

func newAccess(managers []string) access {
	return access{managers: managers, readers: user.Readers(managers)}
}

// listScope returns the cedula a list must be restricted to, or "" when the
// caller may read every row.
func (a access) listScope(su *user.SessionUser) string {
	if su.HasAnyRole(a.readers...) {
		return ""
	}
	return su.User.Cedula
}

func (a access) canRead(su *user.SessionUser, ownerCedula string) bool {
	return su.Owns(ownerCedula) || su.HasAnyRole(a.readers...)
}

func (a access) canDownload(su *user.SessionUser, ownerCedula string) bool {
	return su.Owns(ownerCedula) || su.HasAnyRole(a.managers...)
}

func (a access) requireManager(su *user.SessionUser) error {
	if !su.HasAnyRole(a.managers...) {
		return errs.NewForbiddenError("No tienes permiso para gestionar estas solicitudes", true)
	}
	return nil
}

func errNoAccess() error {
	return errs.NewForbiddenError("No tienes acceso a este registro", true)
}

func errNotFound() error {
	return errs.NewNotFoundError("Registro no encontrado", true, nil)
}
