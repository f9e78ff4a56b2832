package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/justificacion"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docente() *user.SessionUser {
	su := sessionFor("112340567", user.RoleNormalUser)
	su.User.SegundoNombre = utils.Ptr("Lucía")
	su.User.Posicion = utils.Ptr("Profesora de Español")
	su.User.Instancia = utils.Ptr("Propietario")
	return su
}

func date(s string) *model.Date {
	d := model.NewDate(day(s))
	return &d
}

func TestBuildSolicitud(t *testing.T) {
	req := &solicitud.CreateSolicitudRequest{
		TipoGeneral:   "salida",
		TipoSolicitud: "Atencion de asuntos familiares",
		Familiar:      utils.Ptr("Padre"),
		FechaInicio:   date("2024-03-18"),
		Jornada:       "Media",
		HoraInicio:    utils.Ptr("13:00"),
		HoraFin:       utils.Ptr("16:30"),
		Observaciones: utils.Ptr("  "),
	}

	row, err := buildSolicitud(day("2024-03-13"), docente(), req)
	require.NoError(t, err)

	assert.Equal(t, "112340567", row.UserCedula)
	assert.Equal(t, "Ana Lucía Mora Solís", *row.NombreSolicitante)
	assert.Equal(t, "Profesora de Español", *row.Posicion)
	assert.Equal(t, model.TipoSalida, *row.TipoGeneral)
	assert.Equal(t, model.MotivoAsuntosPersonales, row.TipoSolicitud)
	assert.Nil(t, row.Familiar)
	assert.Equal(t, row.FechaInicio, row.FechaFin)
	assert.Equal(t, "1300-1630", *row.HoraCompact)
	assert.Equal(t, model.UnidadLecciones, *row.Unidad)
	assert.Nil(t, row.Observaciones)
	assert.Nil(t, row.AdjuntoURL)
}

func TestBuildSolicitudKeepsAttachmentReference(t *testing.T) {
	req := &solicitud.CreateSolicitudRequest{
		TipoSolicitud:   model.MotivoMedicosPersonales,
		FechaInicio:     date("2024-03-20"),
		AttachmentInput: model.AttachmentInput{AdjuntoPath: utils.Ptr("uploads/dictamen.pdf"), AdjuntoMime: utils.Ptr("application/pdf")},
	}

	row, err := buildSolicitud(day("2024-03-13"), docente(), req)
	require.NoError(t, err)
	assert.Equal(t, "uploads/dictamen.pdf", *row.AdjuntoURL)
	assert.Equal(t, "application/pdf", *row.AdjuntoMime)
	assert.Equal(t, "JORNADA", *row.HoraCompact)
}

func TestBuildJustificacion(t *testing.T) {
	req := &justificacion.CreateJustificacionRequest{
		TipoJustificacion:  "Asuntos medicos familiares",
		Familiar:           utils.Ptr("hijos menores de edad"),
		EsRango:            true,
		FechaInicio:        date("2024-03-07"),
		FechaFin:           date("2024-03-08"),
		JustificacionFecha: date("2024-03-08"),
		JustificacionHora:  utils.Ptr("9:05"),
		AttachmentInput:    model.AttachmentInput{AdjuntoURL: utils.Ptr("https://files.example/cita.pdf")},
	}

	row, err := buildJustificacion(day("2024-03-11"), docente(), req)
	require.NoError(t, err)

	assert.Equal(t, "Hijos menores de edad", *row.Familiar)
	assert.Equal(t, day("2024-03-08"), row.FechaFin.Time)
	assert.Equal(t, "09:05", *row.JustificacionHora)
	assert.Equal(t, "Ana Lucía Mora Solís", *row.NombreSuscriptor)
}

func TestBuildJustificacionNeedsAttachment(t *testing.T) {
	req := &justificacion.CreateJustificacionRequest{
		TipoJustificacion: model.MotivoMedicosFamiliares,
		Familiar:          utils.Ptr("Madre"),
		FechaInicio:       date("2024-03-08"),
	}

	_, err := buildJustificacion(day("2024-03-11"), docente(), req)
	requireFieldError(t, err, "adjunto_url")
}

func TestCheckLinkedSolicitud(t *testing.T) {
	monday := day("2024-03-11")
	su := docente()

	linked := &solicitud.Solicitud{
		UserCedula:  su.User.Cedula,
		EsRango:     true,
		FechaInicio: *date("2024-03-04"),
		FechaFin:    *date("2024-03-08"),
	}
	assert.NoError(t, checkLinkedSolicitud(monday, su, linked))

	linked.EsRango = false
	requireFieldError(t, checkLinkedSolicitud(monday, su, linked), "linked_solicitud_id")

	linked.UserCedula = "999999999"
	var httpErr *errs.HTTPError
	require.True(t, errors.As(checkLinkedSolicitud(monday, su, linked), &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}

func TestBuildOmision(t *testing.T) {
	req := &omision.CreateOmisionRequest{
		FechaOmision:  date("2024-03-12"),
		TipoOmision:   "Entrada",
		Justificacion: "Olvidé marcar al llegar",
	}

	row, err := buildOmision(day("2024-03-13"), docente(), req)
	require.NoError(t, err)
	assert.Equal(t, "Entrada", row.TipoOmision)
	assert.Equal(t, "Propietario", *row.Instancia)

	req.FechaOmision = date("2024-03-08")
	_, err = buildOmision(day("2024-03-13"), docente(), req)
	requireFieldError(t, err, "fecha_omision")
}

func TestBuildReporte(t *testing.T) {
	row := buildReporte(docente(), &reporte.CreateReporteRequest{TipoReporte: "Normal", Lugar: "Aula 12", Reporte: "Fuga en el lavatorio"})

	assert.Equal(t, "112340567", row.UserCedula)
	assert.Equal(t, "Aula 12", row.Lugar)
	assert.Equal(t, "Ana Lucía Mora Solís", *row.NombreSuscriptor)
}

func TestCheckElevated(t *testing.T) {
	manager := sessionFor("1", user.RoleStaffManager)
	admin := sessionFor("2", user.RoleAdmin)

	assert.NoError(t, checkElevated(manager, user.RoleViewer))
	assert.Error(t, checkElevated(manager, user.RoleAdmin))
	assert.Error(t, checkElevated(manager, user.RoleDev))
	assert.NoError(t, checkElevated(admin, user.RoleDev))
}

func TestParseStaffID(t *testing.T) {
	_, err := parseStaffID("not-a-uuid")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	id, err := parseStaffID("2f1c6a9e-3b7d-4a53-9e21-7b0f6c1d2e3f")
	require.NoError(t, err)
	assert.Equal(t, "2f1c6a9e-3b7d-4a53-9e21-7b0f6c1d2e3f", id.String())
}
