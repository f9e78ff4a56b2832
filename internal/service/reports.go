package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/pdf"
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/justificacion"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const stampLayout = "2006-01-02 15:04"

// Reports renders request PDFs.
type Reports struct {
	institution string
	loc         *time.Location
}

func NewReports(institution, timeZone string) *Reports {
	return &Reports{institution: institution, loc: workday.Location(timeZone)}
}

func (r *Reports) render(kind model.Kind, rpt pdf.Report) (*model.File, error) {
	rpt.Institution = r.institution

	data, err := pdf.Render(rpt)
	if err != nil {
		return nil, errors.Wrapf(err, "render %s %d", kind, rpt.Folio)
	}

	return &model.File{
		Name:        kind.PDFName(rpt.Folio),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (r *Reports) stamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(r.loc).Format(stampLayout)
}

func (r *Reports) meta(res model.Resolution, cedula string, creado time.Time, tipo string) []pdf.Field {
	return []pdf.Field{
		{Label: "Estado", Value: utils.FirstNonEmpty(utils.Deref(res.Estado), model.EstadoPendiente)},
		{Label: "Creado", Value: r.stamp(&creado)},
		{Label: "Cédula", Value: cedula},
		{Label: "Tipo", Value: tipo},
	}
}

func (r *Reports) resolution(res model.Resolution) pdf.Section {
	if model.IsPending(res.Estado) {
		return pdf.Section{
			Title:  "Resolución",
			Fields: []pdf.Field{{Label: "Estado", Value: "Pendiente de resolución"}},
		}
	}
	return pdf.Section{
		Title: "Resolución",
		Fields: []pdf.Field{
			{Label: "Decisión", Value: utils.Deref(res.Estado)},
			{Label: "Comentario", Value: utils.Deref(res.RespuestaComentario)},
			{Label: "Resuelto por", Value: strings.TrimSpace(utils.Deref(res.RespuestaNombre) + " " + parens(utils.Deref(res.RespuestaPor)))},
			{Label: "Fecha de respuesta", Value: r.stamp(res.RespuestaEn)},
		},
	}
}

func person(title string, nombre, cedula string, posicion, instancia *string) pdf.Section {
	return pdf.Section{
		Title: title,
		Fields: []pdf.Field{
			{Label: "Nombre", Value: nombre},
			{Label: "Cédula", Value: cedula},
			{Label: "Posición", Value: utils.Deref(posicion)},
			{Label: "Instancia", Value: utils.Deref(instancia)},
		},
	}
}

func attachments(adjuntos []model.Attachment, fallbackURL *string) pdf.Section {
	s := pdf.Section{Title: "Adjuntos"}

	for i, a := range adjuntos {
		ref := utils.FirstNonEmpty(utils.Deref(a.PublicURL), utils.Deref(a.Path))
		if mime := utils.Deref(a.Mime); mime != "" {
			ref += " (" + mime + ")"
		}
		s.Fields = append(s.Fields, pdf.Field{Label: fmt.Sprintf("Archivo %d", i+1), Value: ref})
	}

	if len(s.Fields) == 0 && utils.Deref(fallbackURL) != "" {
		s.Fields = append(s.Fields, pdf.Field{Label: "Archivo 1", Value: *fallbackURL})
	}
	if len(s.Fields) == 0 {
		s.Text = "Sin adjuntos"
	}
	return s
}

func period(inicio, fin model.Date, esRango bool, jornada, horaInicio, horaFin, horaSalida *string, cantidad decimal.NullDecimal, unidad *string) pdf.Section {
	fields := []pdf.Field{
		{Label: "Fecha de inicio", Value: inicio.String()},
		{Label: "Fecha de fin", Value: fin.String()},
		{Label: "Rango de días", Value: yesNo(esRango)},
		{Label: "Jornada", Value: utils.Deref(jornada)},
	}
	if utils.Deref(jornada) == model.JornadaMedia {
		fields = append(fields,
			pdf.Field{Label: "Horario", Value: utils.Deref(horaInicio) + " - " + utils.Deref(horaFin)},
			pdf.Field{Label: "Hora de salida", Value: utils.Deref(horaSalida)},
		)
	}
	if cantidad.Valid {
		fields = append(fields, pdf.Field{Label: "Cantidad", Value: cantidad.Decimal.String() + " " + utils.Deref(unidad)})
	}
	return pdf.Section{Title: "Periodo y jornada", Fields: fields}
}

func (r *Reports) Solicitud(s *solicitud.Solicitud, adjuntos []model.Attachment) (*model.File, error) {
	return r.render(model.KindSolicitud, pdf.Report{
		Folio:     s.ID,
		Title:     model.KindSolicitud.Label(),
		Meta:      r.meta(s.Resolution, s.UserCedula, s.CreadoEn, s.TipoSolicitud),
		Footer:    "Generado por el sistema de permisos",
		CreatedAt: s.CreadoEn,
		Sections: []pdf.Section{
			period(s.FechaInicio, s.FechaFin, s.EsRango, s.Jornada, s.HoraInicio, s.HoraFin, s.HoraSalida, s.Cantidad, s.Unidad),
			person("Solicitante", utils.Deref(s.NombreSolicitante), s.UserCedula, s.Posicion, s.Instancia),
			{
				Title: "Detalle",
				Fields: []pdf.Field{
					{Label: "Tipo general", Value: utils.Deref(s.TipoGeneral)},
					{Label: "Motivo", Value: s.TipoSolicitud},
					{Label: "Familiar", Value: utils.Deref(s.Familiar)},
					{Label: "Observaciones", Value: utils.Deref(s.Observaciones)},
				},
			},
			attachments(adjuntos, s.AdjuntoURL),
			r.resolution(s.Resolution),
		},
	})
}

func (r *Reports) Justificacion(j *justificacion.Justificacion, adjuntos []model.Attachment) (*model.File, error) {
	detail := []pdf.Field{
		{Label: "Tipo general", Value: utils.Deref(j.TipoGeneral)},
		{Label: "Motivo", Value: j.TipoJustificacion},
		{Label: "Familiar", Value: utils.Deref(j.Familiar)},
	}
	if j.LinkedSolicitudID != nil {
		detail = append(detail, pdf.Field{Label: "Solicitud vinculada", Value: fmt.Sprintf("#%d", *j.LinkedSolicitudID)})
	}
	if j.JustificacionFecha != nil || j.JustificacionHora != nil {
		var fecha string
		if j.JustificacionFecha != nil {
			fecha = j.JustificacionFecha.String()
		}
		detail = append(detail, pdf.Field{Label: "Comprobante", Value: strings.TrimSpace(fecha + " " + utils.Deref(j.JustificacionHora))})
	}
	detail = append(detail, pdf.Field{Label: "Observaciones", Value: utils.Deref(j.Observaciones)})

	return r.render(model.KindJustificacion, pdf.Report{
		Folio:     j.ID,
		Title:     model.KindJustificacion.Label(),
		Meta:      r.meta(j.Resolution, j.UserCedula, j.CreadoEn, j.TipoJustificacion),
		Footer:    "Generado por el sistema de justificaciones",
		CreatedAt: j.CreadoEn,
		Sections: []pdf.Section{
			period(j.FechaInicio, j.FechaFin, j.EsRango, j.Jornada, j.HoraInicio, j.HoraFin, j.HoraSalida, j.Cantidad, j.Unidad),
			person("Suscriptor", utils.Deref(j.NombreSuscriptor), j.UserCedula, j.Posicion, j.Instancia),
			{Title: "Detalle", Fields: detail},
			attachments(adjuntos, nil),
			r.resolution(j.Resolution),
		},
	})
}

func (r *Reports) Omision(o *omision.Omision) (*model.File, error) {
	return r.render(model.KindOmision, pdf.Report{
		Folio:     o.ID,
		Title:     model.KindOmision.Label(),
		Meta:      r.meta(o.Resolution, o.UserCedula, o.CreadoEn, o.TipoOmision),
		Footer:    "Generado por el sistema de omisiones de marca",
		CreatedAt: o.CreadoEn,
		Sections: []pdf.Section{
			{
				Title: "Detalle",
				Fields: []pdf.Field{
					{Label: "Fecha de la omisión", Value: o.FechaOmision.String()},
					{Label: "Tipo de omisión", Value: o.TipoOmision},
				},
				Text: o.Justificacion,
			},
			person("Suscriptor", utils.Deref(o.NombreSuscriptor), o.UserCedula, o.Posicion, o.Instancia),
			r.resolution(o.Resolution),
		},
	})
}

func (r *Reports) Reporte(rp *reporte.Reporte) (*model.File, error) {
	return r.render(model.KindReporteInfra, pdf.Report{
		Folio:     rp.ID,
		Title:     model.KindReporteInfra.Label(),
		Meta:      r.meta(rp.Resolution, rp.UserCedula, rp.CreadoEn, rp.TipoReporte),
		Footer:    "Generado por el sistema de infraestructura",
		CreatedAt: rp.CreadoEn,
		Sections: []pdf.Section{
			{
				Title: "Resumen",
				Fields: []pdf.Field{
					{Label: "Prioridad", Value: rp.TipoReporte},
					{Label: "Lugar", Value: rp.Lugar},
				},
				Text: rp.Reporte,
			},
			person("Suscriptor", utils.Deref(rp.NombreSuscriptor), rp.UserCedula, rp.Posicion, rp.Instancia),
			r.resolution(rp.Resolution),
		},
	})
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func parens(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}
