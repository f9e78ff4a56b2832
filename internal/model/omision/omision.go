package omision

import (
	"strings"
	"time"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/validation"
)

// Omision reports a missed clock-in or clock-out.
type Omision struct {
	ID               int64      `json:"id"`
	UserCedula       string     `json:"user_cedula"`
	NombreSuscriptor *string    `json:"nombre_suscriptor"`
	Posicion         *string    `json:"posicion"`
	Instancia        *string    `json:"instancia"`
	FechaOmision     model.Date `json:"fecha_omision"`
	TipoOmision      string     `json:"tipo_omision"`
	Justificacion    string     `json:"justificacion"`
	model.Resolution
	CreadoEn time.Time `json:"creado_en"`
}

var Tipos = []string{"Entrada", "Salida", "Todo el dia", "Salida anticipada"}

var Decisiones = []string{"Aceptar", "Denegar"}

type Detail struct {
	Omision *Omision `json:"omision"`
}

type CreateOmisionRequest struct {
	FechaOmision  *model.Date `json:"fecha_omision" validate:"required"`
	TipoOmision   string      `json:"tipo_omision" validate:"required,oneof=Entrada Salida 'Todo el dia' 'Salida anticipada'"`
	Justificacion string      `json:"justificacion" validate:"required,max=1000"`
}

func (r *CreateOmisionRequest) Validate() error {
	r.TipoOmision = strings.TrimSpace(r.TipoOmision)
	r.Justificacion = strings.TrimSpace(r.Justificacion)
	return validation.Struct(r)
}
