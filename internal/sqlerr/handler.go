package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/mipp-portal/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode returns the Code of a classified error, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError classifies a raw pgconn error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// entityNames holds the user-facing (Spanish) name of each table.
var entityNames = map[string]string{
	"users":                   "usuario",
	"sessions":                "sesión",
	"roles":                   "rol",
	"user_roles":              "rol de usuario",
	"solicitudes_permiso":     "solicitud",
	"solicitud_adjuntos":      "adjunto",
	"justificaciones":         "justificación",
	"justificacion_adjuntos":  "adjunto",
	"omision_marca":           "omisión de marca",
	"reporte_infraestructura": "reporte de infraestructura",
}

var columnNames = map[string]string{
	"cedula":              "cédula",
	"role_id":             "rol",
	"user_id":             "usuario",
	"linked_solicitud_id": "solicitud vinculada",
	"solicitud_id":        "solicitud",
	"justificacion_id":    "justificación",
}

func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, StringTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("El registro de %s referenciado no existe", entityName)

	case UniqueViolation:
		return fmt.Sprintf("Ya existe un %s con este identificador", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "campo"
		}
		return fmt.Sprintf("Campo requerido: %s", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("El valor de %s no cumple las condiciones requeridas", fieldName)
		}
		return "Uno o más valores no cumplen las condiciones requeridas"

	case InvalidText, StringTooLong:
		return "Uno o más valores tienen un formato inválido"

	default:
		return "Ocurrió un error al procesar la solicitud"
	}
}

func getEntityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	if name, ok := columnNames[column]; ok {
		return name
	}
	if column != "" && strings.HasSuffix(column, "_id") {
		return humanizeText(strings.TrimSuffix(column, "_id"))
	}

	if name, ok := entityNames[tableName]; ok {
		return name
	}
	if tableName != "" {
		return humanizeText(tableName)
	}

	return "registro"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	if name, ok := columnNames[strings.ToLower(text)]; ok {
		return name
	}
	return cases.Lower(language.Spanish).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts any repository error into an *errs.HTTPError.
// HTTP errors pass through untouched.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "este identificador", "esta "+humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "es requerido",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation, InvalidText, StringTooLong:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("No encontrado", true, nil)
	}

	return errs.NewInternalServerError()
}
