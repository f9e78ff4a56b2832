package model

import (
	"github.com/deppfellow/mipp-portal/internal/validation"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery is the query string accepted by the request list endpoints.
type ListQuery struct {
	Estado   EstadoFilter `query:"estado" validate:"omitempty,oneof=todos aprobadas pendientes rechazadas Todos Aprobadas Pendientes Rechazadas"`
	Search   string       `query:"search" validate:"max=100"`
	Order    string       `query:"order" validate:"omitempty,oneof=newest oldest"`
	Page     int          `query:"page" validate:"omitempty,min=1"`
	PageSize int          `query:"page_size" validate:"omitempty,min=1,max=100"`
}

func (q *ListQuery) Validate() error {
	return validation.Struct(q)
}

// Normalize fills defaults.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Order == "" {
		q.Order = "newest"
	}
}

// Offset is the number of rows to skip for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
