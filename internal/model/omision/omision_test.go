package omision

import (
	"testing"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOmisionRequestValidate(t *testing.T) {
	d, err := model.ParseDate("2025-03-07")
	require.NoError(t, err)

	for _, tipo := range Tipos {
		r := &CreateOmisionRequest{FechaOmision: &d, TipoOmision: tipo, Justificacion: "Olvidé marcar"}
		assert.NoError(t, r.Validate(), tipo)
	}

	assert.Error(t, (&CreateOmisionRequest{FechaOmision: &d, TipoOmision: "Almuerzo", Justificacion: "x"}).Validate())
	assert.Error(t, (&CreateOmisionRequest{FechaOmision: &d, TipoOmision: "Entrada", Justificacion: "  "}).Validate())
	assert.Error(t, (&CreateOmisionRequest{TipoOmision: "Entrada", Justificacion: "x"}).Validate())
}
