package justificacion

import (
	"time"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/shopspring/decimal"
)

// Justificacion explains an absence after the fact, optionally tied to an
// earlier solicitud.
type Justificacion struct {
	ID                 int64               `json:"id"`
	UserCedula         string              `json:"user_cedula"`
	LinkedSolicitudID  *int64              `json:"linked_solicitud_id"`
	NombreSuscriptor   *string             `json:"nombre_suscriptor"`
	Posicion           *string             `json:"posicion"`
	Instancia          *string             `json:"instancia"`
	TipoGeneral        *string             `json:"tipo_general"`
	TipoJustificacion  string              `json:"tipo_justificacion"`
	Familiar           *string             `json:"familiar"`
	EsRango            bool                `json:"es_rango"`
	FechaInicio        model.Date          `json:"fecha_inicio"`
	FechaFin           model.Date          `json:"fecha_fin"`
	Jornada            *string             `json:"jornada"`
	HoraInicio         *string             `json:"hora_inicio"`
	HoraFin            *string             `json:"hora_fin"`
	HoraSalida         *string             `json:"hora_salida"`
	Cantidad           decimal.NullDecimal `json:"cantidad"`
	Unidad             *string             `json:"unidad"`
	JustificacionFecha *model.Date         `json:"justificacion_fecha"`
	JustificacionHora  *string             `json:"justificacion_hora"`
	Observaciones      *string             `json:"observaciones"`
	model.Resolution
	CreadoEn time.Time `json:"creado_en"`
}

// Decisiones a personnel manager may record.
var Decisiones = []string{
	"Aceptar con rebajo salarial parcial",
	"Aceptar con rebajo salarial total",
	"Aceptar sin rebajo salarial",
	"Denegar lo solicitado",
	"Acoger convocatoria",
}

type Detail struct {
	Justificacion *Justificacion     `json:"justificacion"`
	Adjuntos      []model.Attachment `json:"adjuntos"`
}
