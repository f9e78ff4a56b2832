package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID      int64  `param:"id" validate:"required,gt=0"`
	Cedula  string `json:"cedula" validate:"required,cedula"`
	Nombre  string `json:"nombre" validate:"required,personname,max=20"`
	Hora    string `json:"hora" validate:"omitempty,clock"`
	Jornada string `json:"jornada" validate:"omitempty,oneof=Completa Media"`
	Order   string `query:"order" validate:"omitempty,oneof=newest oldest"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

type customPayload struct {
	Motivo string `json:"motivo"`
}

func (p *customPayload) Validate() error {
	if p.Motivo == "" {
		return CustomValidationErrors{{Field: "motivo", Message: "Motivo inválido"}}
	}
	return nil
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBindAndValidateSuccess(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/x?order=oldest", `{"cedula":"112340567","nombre":"María José","hora":"07:30","jornada":"Media"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	p := &samplePayload{}
	require.NoError(t, BindAndValidate(c, p))

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "María José", p.Nombre)
	assert.Equal(t, "07:30", p.Hora)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/x", `{"cedula":"11-234","nombre":"R2D2","hora":"25:00","jornada":"Doble"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidation, httpErr.Code)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "debe contener solo dígitos (9 a 12)", byField["cedula"])
	assert.Equal(t, "solo se permiten letras y espacios", byField["nombre"])
	assert.Equal(t, "debe tener formato HH:MM", byField["hora"])
	assert.Equal(t, "debe ser uno de: Completa Media", byField["jornada"])
}

func TestBindAndValidateRequiredMessage(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/x", `{"nombre":"Ana"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Campo requerido: cedula", httpErr.Message)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/x", `{"cedula":`)

	err := BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Nil(t, httpErr.Errors)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/x", `{}`)

	err := BindAndValidate(c, &customPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Motivo inválido", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "motivo", httpErr.Errors[0].Field)
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsValidCedula("123456789"))
	assert.False(t, IsValidCedula("1234"))
	assert.True(t, IsValidPersonName("Ñandú Pérez"))
	assert.False(t, IsValidPersonName("Juan-Pablo"))
	assert.True(t, IsValidUUID("2f1c6a9e-3b7d-4a53-9e21-7b0f6c1d2e3f"))
}
