package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// requireFieldError asserts err is a 400 naming field.
func requireFieldError(t *testing.T, err error, field string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, field, httpErr.Errors[0].Field)
	return httpErr
}

func TestResolveScheduleForcedJornada(t *testing.T) {
	sc, err := resolveSchedule("incapacidad", "Media", utils.Ptr("08:00"), utils.Ptr("10:00"), nil)
	require.NoError(t, err)

	assert.Equal(t, model.TipoIncapacidad, *sc.TipoGeneral)
	assert.Equal(t, model.JornadaCompleta, sc.Jornada)
	assert.Equal(t, "JORNADA", sc.HoraCompact)
	assert.Nil(t, sc.HoraInicio)
	assert.Nil(t, sc.HoraFin)
}

func TestResolveScheduleMedia(t *testing.T) {
	sc, err := resolveSchedule("", "media", utils.Ptr("8:00"), utils.Ptr("10:30"), utils.Ptr("10:30"))
	require.NoError(t, err)

	assert.Nil(t, sc.TipoGeneral)
	assert.Equal(t, model.JornadaMedia, sc.Jornada)
	assert.Equal(t, "08:00", *sc.HoraInicio)
	assert.Equal(t, "10:30", *sc.HoraFin)
	assert.Equal(t, "0800-1030", sc.HoraCompact)
	assert.Equal(t, "10:30", *sc.HoraSalida)
}

func TestResolveScheduleErrors(t *testing.T) {
	tests := []struct {
		name        string
		tipoGeneral string
		jornada     string
		inicio, fin *string
		field       string
	}{
		{"unknown tipo", "Vacaciones", "", nil, nil, "tipo_general"},
		{"unknown jornada", "", "Doble", nil, nil, "jornada"},
		{"tardia needs hours", "Tardía", "", nil, nil, "hora_inicio"},
		{"outside school day", "", "Media", utils.Ptr("06:30"), utils.Ptr("08:00"), "hora_fin"},
		{"too long", "", "Media", utils.Ptr("07:00"), utils.Ptr("12:00"), "hora_fin"},
		{"reversed", "", "Media", utils.Ptr("10:00"), utils.Ptr("09:00"), "hora_fin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSchedule(tt.tipoGeneral, tt.jornada, tt.inicio, tt.fin, nil)
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestResolveMotiveLegacyLabel(t *testing.T) {
	m, err := resolveMotive("tipo_solicitud", "Cita médica personal", utils.Ptr("Padre"), true, model.MotivoMedicosPersonales)
	require.NoError(t, err)

	assert.Equal(t, model.MotivoMedicosPersonales, m.Motivo)
	assert.Nil(t, m.Familiar, "familiar only applies to medicos familiares")
}

func TestResolveMotiveAttachmentRequired(t *testing.T) {
	_, err := resolveMotive("tipo_solicitud", model.MotivoConvocatoria, nil, false, model.MotivoMedicosPersonales, model.MotivoConvocatoria)
	httpErr := requireFieldError(t, err, "adjunto_url")
	assert.Contains(t, httpErr.Message, "requiere un comprobante")

	_, err = resolveMotive("tipo_solicitud", model.MotivoAsuntosPersonales, nil, false, model.MotivoMedicosPersonales, model.MotivoConvocatoria)
	assert.NoError(t, err)
}

func TestResolveMotiveFamiliar(t *testing.T) {
	m, err := resolveMotive("tipo_justificacion", "Acompañar a cita familiar", utils.Ptr(" madre "), true)
	require.NoError(t, err)
	assert.Equal(t, model.MotivoMedicosFamiliares, m.Motivo)
	assert.Equal(t, "Madre", *m.Familiar)

	_, err = resolveMotive("tipo_justificacion", model.MotivoMedicosFamiliares, nil, true)
	requireFieldError(t, err, "familiar")

	_, err = resolveMotive("tipo_justificacion", "Vacaciones", nil, true)
	requireFieldError(t, err, "tipo_justificacion")
}

func TestResolveCantidad(t *testing.T) {
	_, unidad, err := resolveCantidad(decimal.NullDecimal{}, "", "Profesor de Inglés")
	require.NoError(t, err)
	assert.Equal(t, model.UnidadLecciones, unidad)

	_, unidad, err = resolveCantidad(decimal.NewNullDecimal(decimal.NewFromFloat(1.5)), "", "Conserje")
	require.NoError(t, err)
	assert.Equal(t, model.UnidadHoras, unidad)

	_, _, err = resolveCantidad(decimal.NewNullDecimal(decimal.Zero), "horas", "")
	requireFieldError(t, err, "cantidad")
}

func TestCheckSolicitudDates(t *testing.T) {
	today := day("2024-03-13")

	end, err := checkSolicitudDates(today, day("2024-03-16"), nil, false)
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-16"), end)

	fin := day("2024-03-20")
	end, err = checkSolicitudDates(today, day("2024-03-18"), &fin, true)
	require.NoError(t, err)
	assert.Equal(t, fin, end)

	tests := []struct {
		name    string
		inicio  string
		fin     string
		esRango bool
		field   string
		message string
	}{
		{"past", "2024-03-12", "", false, "fecha_inicio", "anterior a hoy"},
		{"short notice", "2024-03-15", "", false, "fecha_inicio", "3 días de anticipación"},
		{"too far", "2025-03-14", "", false, "fecha_inicio", "un año"},
		{"range end not after start", "2024-03-18", "2024-03-18", true, "fecha_fin", "posterior"},
		{"end before start", "2024-03-18", "2024-03-17", false, "fecha_fin", "anterior a la de inicio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fin *time.Time
			if tt.fin != "" {
				f := day(tt.fin)
				fin = &f
			}
			_, err := checkSolicitudDates(today, day(tt.inicio), fin, tt.esRango)
			httpErr := requireFieldError(t, err, tt.field)
			assert.Contains(t, httpErr.Message, tt.message)
		})
	}
}

func TestCheckJustificacionDates(t *testing.T) {
	monday := day("2024-03-11")

	_, err := checkJustificacionDates(monday, day("2024-03-08"), nil, false)
	assert.NoError(t, err, "friday is the previous business day")

	fin := day("2024-03-08")
	end, err := checkJustificacionDates(monday, day("2024-03-07"), &fin, true)
	require.NoError(t, err)
	assert.Equal(t, fin, end)

	_, err = checkJustificacionDates(monday, day("2024-03-06"), nil, false)
	httpErr := requireFieldError(t, err, "fecha_inicio")
	assert.Equal(t, "La fecha debe ser uno de los dos días hábiles anteriores (2024-03-07 o 2024-03-08)", httpErr.Message)

	_, err = checkJustificacionDates(monday, day("2024-03-11"), nil, false)
	requireFieldError(t, err, "fecha_inicio")

	reversed := day("2024-03-07")
	_, err = checkJustificacionDates(monday, day("2024-03-08"), &reversed, true)
	requireFieldError(t, err, "fecha_fin")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hora_fin inválida", capitalize("hora_fin inválida"))
	assert.Equal(t, "", capitalize(""))
}
