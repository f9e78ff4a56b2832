package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "users",
		ConstraintName: "users_cedula_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert user: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USERS_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "Ya existe un usuario con esta cédula", httpErr.Message)
}

func TestHandleErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "justificaciones",
		ColumnName: "linked_solicitud_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "JUSTIFICACIONES_NOT_FOUND", httpErr.Code)
	assert.Contains(t, httpErr.Message, "solicitud vinculada")
}

func TestHandleErrorNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "omision_marca", ColumnName: "fecha_omision"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "fecha_omision", httpErr.Errors[0].Field)
	assert.Equal(t, "Campo requerido: fecha omision", httpErr.Message)
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("get solicitud: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "No encontrado", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrors(t *testing.T) {
	original := errs.NewForbiddenError("Prohibido", true)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "cedula", extractColumnForUniqueViolation("users_cedula_key"))
	assert.Equal(t, "slug", extractColumnForUniqueViolation("unique_roles_slug"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
