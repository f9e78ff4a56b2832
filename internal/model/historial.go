package model

import (
	"time"

	"github.com/deppfellow/mipp-portal/internal/validation"
)

// HistorialItem is one row of the caller's combined request history.
type HistorialItem struct {
	Tipo      Kind      `json:"tipo"`
	ID        int64     `json:"id"`
	Fecha     *Date     `json:"fecha"`
	Estado    *string   `json:"estado"`
	Categoria Categoria `json:"categoria"`
	Resumen   string    `json:"resumen"`
	CreadoEn  time.Time `json:"creado_en"`
}

type HistorialQuery struct {
	Estado EstadoFilter `query:"estado" validate:"omitempty,oneof=todos aprobadas pendientes rechazadas Todos Aprobadas Pendientes Rechazadas"`
	Limit  int          `query:"limit" validate:"omitempty,min=1,max=200"`
}

func (q *HistorialQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = 50
	}
	return validation.Struct(q)
}

// HistorialResponse wraps the history feed.
type HistorialResponse struct {
	Items []HistorialItem `json:"items"`
}
