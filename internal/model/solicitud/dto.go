package solicitud

import (
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/validation"
	"github.com/shopspring/decimal"
)

// CreateSolicitudRequest is the body of POST /api/solicitudes. Requester
// identity is taken from the session, never from the body.
type CreateSolicitudRequest struct {
	TipoGeneral   string              `json:"tipo_general" validate:"max=30"`
	TipoSolicitud string              `json:"tipo_solicitud" validate:"required,max=80"`
	Familiar      *string             `json:"familiar" validate:"omitempty,max=60"`
	EsRango       bool                `json:"es_rango"`
	FechaInicio   *model.Date         `json:"fecha_inicio" validate:"required"`
	FechaFin      *model.Date         `json:"fecha_fin"`
	Jornada       string              `json:"jornada" validate:"max=20"`
	HoraInicio    *string             `json:"hora_inicio" validate:"omitempty,clock"`
	HoraFin       *string             `json:"hora_fin" validate:"omitempty,clock"`
	HoraSalida    *string             `json:"hora_salida" validate:"omitempty,clock"`
	Cantidad      decimal.NullDecimal `json:"cantidad"`
	Unidad        string              `json:"unidad" validate:"omitempty,oneof=horas lecciones"`
	Observaciones *string             `json:"observaciones" validate:"omitempty,max=1000"`
	model.AttachmentInput
}

func (r *CreateSolicitudRequest) Validate() error {
	return validation.Struct(r)
}
