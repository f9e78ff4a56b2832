package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 3, 13, 14, 30, 0, 0, time.UTC)

func TestReportsSolicitud(t *testing.T) {
	r := NewReports("CTP Mercedes Norte", "America/Costa_Rica")

	file, err := r.Solicitud(&solicitud.Solicitud{
		ID:                42,
		UserCedula:        "112340567",
		NombreSolicitante: utils.Ptr("Ana Mora Solís"),
		TipoSolicitud:     model.MotivoMedicosPersonales,
		FechaInicio:       *date("2024-03-18"),
		FechaFin:          *date("2024-03-18"),
		Jornada:           utils.Ptr(model.JornadaMedia),
		HoraInicio:        utils.Ptr("08:00"),
		HoraFin:           utils.Ptr("10:00"),
		CreadoEn:          created,
	}, []model.Attachment{{ID: 1, PublicURL: utils.Ptr("https://files.example/dictamen.pdf"), Mime: utils.Ptr("application/pdf")}})
	require.NoError(t, err)

	assert.Equal(t, "solicitud_42.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestReportsResolvedRows(t *testing.T) {
	r := NewReports("CTP Mercedes Norte", "America/Costa_Rica")
	resolvedAt := created.Add(time.Hour)
	res := model.Resolution{
		Estado:              utils.Ptr("Denegar"),
		RespuestaComentario: utils.Ptr("Fuera de plazo"),
		RespuestaEn:         &resolvedAt,
		RespuestaPor:        utils.Ptr("333333333"),
		RespuestaNombre:     utils.Ptr("Luis Vargas"),
	}

	file, err := r.Omision(&omision.Omision{ID: 7, UserCedula: "1", FechaOmision: *date("2024-03-12"), TipoOmision: "Entrada", Justificacion: "Olvido", Resolution: res, CreadoEn: created})
	require.NoError(t, err)
	assert.Equal(t, "omision_7.pdf", file.Name)

	file, err = r.Reporte(&reporte.Reporte{ID: 9, UserCedula: "1", TipoReporte: "Muy urgente", Lugar: "Taller", Reporte: "Cable expuesto", CreadoEn: created})
	require.NoError(t, err)
	assert.Equal(t, "reporte_infra_9.pdf", file.Name)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestAttachmentsSection(t *testing.T) {
	s := attachments(nil, nil)
	assert.Equal(t, "Sin adjuntos", s.Text)

	s = attachments(nil, utils.Ptr("https://files.example/a.pdf"))
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "https://files.example/a.pdf", s.Fields[0].Value)

	s = attachments([]model.Attachment{{Path: utils.Ptr("uploads/b.png"), Mime: utils.Ptr("image/png")}}, nil)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "uploads/b.png (image/png)", s.Fields[0].Value)
}

func TestResolutionPayload(t *testing.T) {
	requester := &user.User{Nombre: "Ana", PrimerApellido: "Mora", SegundoApellido: "Solís", Correo: utils.Ptr("ana@example.com")}

	p := resolutionPayload(model.KindSolicitud, &model.RespondRequest{ID: 42, Decision: "Aceptar lo solicitado"}, requester)
	assert.Equal(t, "ana@example.com", p.To)
	assert.Equal(t, "Ana Mora Solís", p.Nombre)
	assert.Equal(t, "Solicitud de Permiso", p.Tipo)
	assert.Equal(t, int64(42), p.Folio)
	assert.True(t, p.Aprobado)

	p = resolutionPayload(model.KindReporteInfra, &model.RespondRequest{ID: 3, Decision: "No solucionado", Comentario: "Sin repuestos"}, requester)
	assert.False(t, p.Aprobado)
	assert.Equal(t, "Sin repuestos", p.Comentario)
}
