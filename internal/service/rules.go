package service

import (
	"fmt"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/shopspring/decimal"
)

// Solicitudes must be filed this many days ahead, and no further than a year.
const (
	MinLeadDays = 3
	horaJornada = "JORNADA"
)

// schedule is the resolved tipo_general, jornada and hours of a request.
type schedule struct {
	TipoGeneral *string
	Jornada     string
	HoraInicio  *string
	HoraFin     *string
	HoraSalida  *string
	HoraCompact string
}

// resolveSchedule applies the jornada forced by tipo_general and checks the
// hours of a media jornada. Hours are dropped for a full day.
func resolveSchedule(tipoGeneral, jornada string, horaInicio, horaFin, horaSalida *string) (schedule, error) {
	var sc schedule

	if utils.CollapseSpaces(tipoGeneral) != "" {
		tg, ok := model.NormalizeTipoGeneral(tipoGeneral)
		if !ok {
			return sc, errs.BadRequestField("tipo_general", "Tipo inválido, debe ser Salida, Ausencia, Tardía o Incapacidad")
		}
		sc.TipoGeneral = &tg
	}

	j, ok := model.ResolveJornada(utils.Deref(sc.TipoGeneral), jornada)
	if !ok {
		return sc, errs.BadRequestField("jornada", "Jornada inválida, debe ser Completa o Media")
	}
	sc.Jornada = j

	if j == model.JornadaCompleta {
		sc.HoraCompact = horaJornada
		return sc, nil
	}

	start, end := utils.Deref(utils.NilIfBlank(horaInicio)), utils.Deref(utils.NilIfBlank(horaFin))
	if start == "" || end == "" {
		return sc, errs.BadRequestField("hora_inicio", "Para media jornada se requieren hora_inicio y hora_fin")
	}

	start, end, err := workday.ValidatePartialDay(start, end)
	if err != nil {
		return sc, errs.BadRequestField("hora_fin", capitalize(err.Error()))
	}

	sc.HoraInicio = &start
	sc.HoraFin = &end
	sc.HoraCompact = workday.CompactHours(start, end)

	if salida := utils.NilIfBlank(horaSalida); salida != nil {
		minutes, err := workday.ParseClock(*salida)
		if err != nil {
			return sc, errs.BadRequestField("hora_salida", "hora_salida inválida")
		}
		normalized := workday.FormatClock(minutes)
		sc.HoraSalida = &normalized
	}

	return sc, nil
}

// motive is a normalised motive with its familiar.
type motive struct {
	Motivo   string
	Familiar *string
}

// resolveMotive normalises the motive, enforces its attachment requirement
// and keeps the familiar only where it applies.
func resolveMotive(field, raw string, familiar *string, hasAttachment bool, attachmentRequired ...string) (motive, error) {
	var m motive

	motivo, ok := model.NormalizeMotivo(raw)
	if !ok {
		return m, errs.BadRequestField(field, "Motivo inválido")
	}
	m.Motivo = motivo

	for _, required := range attachmentRequired {
		if motivo == required && !hasAttachment {
			return m, errs.BadRequestField("adjunto_url", fmt.Sprintf("El motivo \"%s\" requiere un comprobante adjunto", motivo))
		}
	}

	if motivo == model.MotivoMedicosFamiliares {
		f, ok := model.NormalizeFamiliar(utils.Deref(familiar))
		if !ok {
			return m, errs.BadRequestField("familiar", "Debe indicar el familiar: Padre, Madre, Hijos menores de edad, Esposo/a, Conyugue o Hijos discapacitados")
		}
		m.Familiar = &f
	}

	return m, nil
}

// resolveCantidad checks cantidad and picks the unit.
func resolveCantidad(cantidad decimal.NullDecimal, unidad, posicion string) (decimal.NullDecimal, string, error) {
	if cantidad.Valid && !cantidad.Decimal.IsPositive() {
		return cantidad, "", errs.BadRequestField("cantidad", "La cantidad debe ser mayor que cero")
	}
	if unidad == "" {
		unidad = model.DefaultUnidad(posicion)
	}
	return cantidad, unidad, nil
}

// checkSolicitudDates enforces the advance-notice rules and returns the
// effective end date.
func checkSolicitudDates(today time.Time, inicio time.Time, fin *time.Time, esRango bool) (time.Time, error) {
	end := inicio
	if fin != nil && !fin.IsZero() {
		end = *fin
	}

	if inicio.Before(today) {
		return end, errs.BadRequestField("fecha_inicio", "La fecha de inicio no puede ser anterior a hoy")
	}
	if end.Before(today) {
		return end, errs.BadRequestField("fecha_fin", "La fecha de fin no puede ser anterior a hoy")
	}

	if esRango && !end.After(inicio) {
		return end, errs.BadRequestField("fecha_fin", "En un rango la fecha de fin debe ser posterior a la de inicio")
	}
	if end.Before(inicio) {
		return end, errs.BadRequestField("fecha_fin", "La fecha de fin no puede ser anterior a la de inicio")
	}

	if inicio.Before(today.AddDate(0, 0, MinLeadDays)) {
		return end, errs.BadRequestField("fecha_inicio", fmt.Sprintf("La solicitud debe presentarse con al menos %d días de anticipación", MinLeadDays))
	}
	if inicio.After(today.AddDate(1, 0, 0)) {
		return end, errs.BadRequestField("fecha_inicio", "La fecha de inicio no puede ser mayor a un año")
	}

	return end, nil
}

// checkJustificacionDates enforces the two-business-day window and returns
// the effective end date.
func checkJustificacionDates(today time.Time, inicio time.Time, fin *time.Time, esRango bool) (time.Time, error) {
	end := inicio
	if esRango && fin != nil && !fin.IsZero() {
		end = *fin
	}

	if !workday.InJustificationWindow(inicio, today) {
		return end, errs.BadRequestField("fecha_inicio", windowMessage(today))
	}
	if esRango && !workday.InJustificationWindow(end, today) {
		return end, errs.BadRequestField("fecha_fin", windowMessage(today))
	}
	if end.Before(inicio) {
		return end, errs.BadRequestField("fecha_fin", "La fecha de fin no puede ser anterior a la de inicio")
	}

	return end, nil
}

func windowMessage(today time.Time) string {
	days := workday.PreviousBusinessDays(today, workday.JustificationWindow)
	return fmt.Sprintf("La fecha debe ser uno de los dos días hábiles anteriores (%s o %s)",
		workday.FormatDate(days[1]), workday.FormatDate(days[0]))
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
