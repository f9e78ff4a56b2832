package model

import (
	"strings"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
)

// Motives accepted on solicitudes and justificaciones.
const (
	MotivoMedicosPersonales = "Asuntos medicos personales"
	MotivoMedicosFamiliares = "Asuntos medicos familiares"
	MotivoConvocatoria      = "Asistencia a convocatoria"
	MotivoAsuntosPersonales = "Atención de asuntos personales"
)

// Motivos lists the current motive labels.
var Motivos = []string{
	MotivoMedicosPersonales,
	MotivoMedicosFamiliares,
	MotivoConvocatoria,
	MotivoAsuntosPersonales,
}

// legacyMotivos maps labels used by older forms onto current ones. Keys are
// accent-folded.
var legacyMotivos = map[string]string{
	"cita medica personal":           MotivoMedicosPersonales,
	"acompanar a cita familiar":      MotivoMedicosFamiliares,
	"atencion de asuntos familiares": MotivoAsuntosPersonales,
}

// NormalizeMotivo returns the current label for s and whether it is known.
// Matching ignores case, accents and extra whitespace.
func NormalizeMotivo(s string) (string, bool) {
	key := utils.FoldAccents(utils.CollapseSpaces(s))
	if key == "" {
		return "", false
	}
	if current, ok := legacyMotivos[key]; ok {
		return current, true
	}
	for _, m := range Motivos {
		if utils.FoldAccents(m) == key {
			return m, true
		}
	}
	return strings.TrimSpace(s), false
}

// Familiares accepted for MotivoMedicosFamiliares.
var Familiares = []string{
	"Padre",
	"Madre",
	"Hijos menores de edad",
	"Esposo/a",
	"Conyugue",
	"Hijos discapacitados",
}

// NormalizeFamiliar returns the canonical spelling of a familiar.
func NormalizeFamiliar(s string) (string, bool) {
	key := utils.FoldAccents(utils.CollapseSpaces(s))
	for _, f := range Familiares {
		if utils.FoldAccents(f) == key {
			return f, true
		}
	}
	return "", false
}

// General request types and their forced jornada.
const (
	TipoSalida      = "Salida"
	TipoAusencia    = "Ausencia"
	TipoTardia      = "Tardía"
	TipoIncapacidad = "Incapacidad"

	JornadaCompleta = "Completa"
	JornadaMedia    = "Media"
)

var TiposGeneral = []string{TipoSalida, TipoAusencia, TipoTardia, TipoIncapacidad}

// NormalizeTipoGeneral returns the canonical spelling of a general type.
func NormalizeTipoGeneral(s string) (string, bool) {
	key := utils.FoldAccents(utils.CollapseSpaces(s))
	for _, tg := range TiposGeneral {
		if utils.FoldAccents(tg) == key {
			return tg, true
		}
	}
	return "", false
}

// ResolveJornada applies the jornada forced by the general type. An empty
// jornada defaults to Completa.
func ResolveJornada(tipoGeneral, jornada string) (string, bool) {
	switch tipoGeneral {
	case TipoIncapacidad:
		return JornadaCompleta, true
	case TipoTardia:
		return JornadaMedia, true
	}
	switch utils.FoldAccents(strings.TrimSpace(jornada)) {
	case "", "completa":
		return JornadaCompleta, true
	case "media":
		return JornadaMedia, true
	}
	return "", false
}

// Units for cantidad.
const (
	UnidadHoras     = "horas"
	UnidadLecciones = "lecciones"
)

// DefaultUnidad picks lecciones for teaching positions and horas otherwise.
func DefaultUnidad(posicion string) string {
	p := utils.FoldAccents(posicion)
	if strings.Contains(p, "profesor") || strings.Contains(p, "docente") {
		return UnidadLecciones
	}
	return UnidadHoras
}
