package justificacion

import (
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/validation"
	"github.com/shopspring/decimal"
)

type CreateJustificacionRequest struct {
	LinkedSolicitudID  *int64              `json:"linked_solicitud_id" validate:"omitempty,gt=0"`
	TipoGeneral        string              `json:"tipo_general" validate:"max=30"`
	TipoJustificacion  string              `json:"tipo_justificacion" validate:"required,max=80"`
	Familiar           *string             `json:"familiar" validate:"omitempty,max=60"`
	EsRango            bool                `json:"es_rango"`
	FechaInicio        *model.Date         `json:"fecha_inicio" validate:"required"`
	FechaFin           *model.Date         `json:"fecha_fin"`
	Jornada            string              `json:"jornada" validate:"max=20"`
	HoraInicio         *string             `json:"hora_inicio" validate:"omitempty,clock"`
	HoraFin            *string             `json:"hora_fin" validate:"omitempty,clock"`
	HoraSalida         *string             `json:"hora_salida" validate:"omitempty,clock"`
	Cantidad           decimal.NullDecimal `json:"cantidad"`
	Unidad             string              `json:"unidad" validate:"omitempty,oneof=horas lecciones"`
	JustificacionFecha *model.Date         `json:"justificacion_fecha"`
	JustificacionHora  *string             `json:"justificacion_hora" validate:"omitempty,clock"`
	Observaciones      *string             `json:"observaciones" validate:"omitempty,max=1000"`
	model.AttachmentInput
}

func (r *CreateJustificacionRequest) Validate() error {
	return validation.Struct(r)
}
