package reporte

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateReporteRequestValidate(t *testing.T) {
	ok := &CreateReporteRequest{TipoReporte: "Muy urgente", Lugar: " Taller 3 ", Reporte: "Fuga en el lavatorio"}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, "Taller 3", ok.Lugar)

	assert.Error(t, (&CreateReporteRequest{TipoReporte: "Urgentísimo", Lugar: "A", Reporte: "B"}).Validate())
	assert.Error(t, (&CreateReporteRequest{TipoReporte: "Normal", Lugar: "   ", Reporte: "B"}).Validate())
}
