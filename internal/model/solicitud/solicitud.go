package solicitud

import (
	"time"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/shopspring/decimal"
)

// Solicitud is a leave or permission request filed ahead of time.
type Solicitud struct {
	ID                int64               `json:"id"`
	UserCedula        string              `json:"user_cedula"`
	NombreSolicitante *string             `json:"nombre_solicitante"`
	Posicion          *string             `json:"posicion"`
	Instancia         *string             `json:"instancia"`
	TipoGeneral       *string             `json:"tipo_general"`
	TipoSolicitud     string              `json:"tipo_solicitud"`
	Familiar          *string             `json:"familiar"`
	EsRango           bool                `json:"es_rango"`
	FechaInicio       model.Date          `json:"fecha_inicio"`
	FechaFin          model.Date          `json:"fecha_fin"`
	Jornada           *string             `json:"jornada"`
	HoraInicio        *string             `json:"hora_inicio"`
	HoraFin           *string             `json:"hora_fin"`
	HoraCompact       *string             `json:"hora_compact"`
	HoraSalida        *string             `json:"hora_salida"`
	Cantidad          decimal.NullDecimal `json:"cantidad"`
	Unidad            *string             `json:"unidad"`
	Observaciones     *string             `json:"observaciones"`
	AdjuntoURL        *string             `json:"adjunto_url"`
	AdjuntoMime       *string             `json:"adjunto_mime"`
	model.Resolution
	CreadoEn time.Time `json:"creado_en"`
}

// Decisiones a personnel manager may record.
var Decisiones = []string{
	"Aceptar lo solicitado",
	"Denegar lo solicitado",
	"Acoger convocatoria",
}

// Detail is a solicitud with its attachments.
type Detail struct {
	Solicitud *Solicitud         `json:"solicitud"`
	Adjuntos  []model.Attachment `json:"adjuntos"`
}
