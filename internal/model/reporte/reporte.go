package reporte

import (
	"strings"
	"time"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/validation"
)

// Reporte is a facility damage report handled by infrastructure managers.
type Reporte struct {
	ID               int64   `json:"id"`
	UserCedula       string  `json:"user_cedula"`
	NombreSuscriptor *string `json:"nombre_suscriptor"`
	Posicion         *string `json:"posicion"`
	Instancia        *string `json:"instancia"`
	TipoReporte      string  `json:"tipo_reporte"`
	Lugar            string  `json:"lugar"`
	Reporte          string  `json:"reporte"`
	model.Resolution
	CreadoEn time.Time `json:"creado_en"`
}

var Tipos = []string{"No urgente", "Normal", "Muy urgente"}

var Decisiones = []string{"Solucionado", "No solucionado"}

type Detail struct {
	Reporte *Reporte `json:"reporte"`
}

type CreateReporteRequest struct {
	TipoReporte string `json:"tipo_reporte" validate:"required,oneof='No urgente' Normal 'Muy urgente'"`
	Lugar       string `json:"lugar" validate:"required,max=200"`
	Reporte     string `json:"reporte" validate:"required,max=2000"`
}

func (r *CreateReporteRequest) Validate() error {
	r.TipoReporte = strings.TrimSpace(r.TipoReporte)
	r.Lugar = strings.TrimSpace(r.Lugar)
	r.Reporte = strings.TrimSpace(r.Reporte)
	return validation.Struct(r)
}
