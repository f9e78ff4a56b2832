package model

import (
	"strings"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
)

// EstadoPendiente is the estado of every new row.
const EstadoPendiente = "Pendiente"

// Categoria is the coarse status derived from a free-text estado.
type Categoria string

const (
	CategoriaPendiente Categoria = "pendiente"
	CategoriaAprobado  Categoria = "aprobado"
	CategoriaRechazado Categoria = "rechazado"
	CategoriaOtro      Categoria = "otro"
)

// ClassifyEstado maps an estado onto its category. Rejections are checked
// first because "No solucionado" also contains "solucion".
func ClassifyEstado(estado *string) Categoria {
	if estado == nil {
		return CategoriaPendiente
	}

	s := utils.FoldAccents(strings.TrimSpace(*estado))

	switch {
	case s == "":
		return CategoriaPendiente
	case strings.Contains(s, "rech"), strings.Contains(s, "deneg"), strings.Contains(s, "no solucion"):
		return CategoriaRechazado
	case strings.Contains(s, "aprob"), strings.Contains(s, "acept"), strings.Contains(s, "acoge"), strings.Contains(s, "solucion"):
		return CategoriaAprobado
	case strings.Contains(s, "pend"):
		return CategoriaPendiente
	default:
		return CategoriaOtro
	}
}

// IsPending reports whether a row may still be resolved.
func IsPending(estado *string) bool {
	return estado == nil || *estado == "Pendiente" || *estado == "pendiente"
}

// EstadoFilter is the list filter accepted by the list endpoints.
type EstadoFilter string

const (
	FilterTodos      EstadoFilter = "todos"
	FilterAprobadas  EstadoFilter = "aprobadas"
	FilterPendientes EstadoFilter = "pendientes"
	FilterRechazadas EstadoFilter = "rechazadas"
)

// Categoria returns the category selected by the filter, or "" for todos.
func (f EstadoFilter) Categoria() Categoria {
	switch EstadoFilter(strings.ToLower(string(f))) {
	case FilterAprobadas:
		return CategoriaAprobado
	case FilterPendientes:
		return CategoriaPendiente
	case FilterRechazadas:
		return CategoriaRechazado
	default:
		return ""
	}
}
