package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by every request DTO.
type Validatable interface {
	Validate() error
}

// CustomValidationError reports a rule that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return "Datos inválidos"
	}
	return c[0].Message
}

var (
	cedulaRegex     = regexp.MustCompile(`^[0-9]{9,12}$`)
	personNameRegex = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ ]+$`)
	clockRegex      = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	uuidRegex       = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Fields are reported by their JSON
// (or query/param) name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("cedula", func(fl validator.FieldLevel) bool {
			return cedulaRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return personNameRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return clockRegex.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// Struct validates v against its struct tags.
func Struct(v any) error {
	return Validator().Struct(v)
}

// BindAndValidate binds path, query and body into payload and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Solicitud inválida"

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		code := errs.CodeValidation
		return errs.NewBadRequestError(msg, true, &code, fieldErrors, nil)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return customErrors.Error(), fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), []errs.FieldError{}
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
		})
	}

	first := validationErrors[0]
	if first.Tag() == "required" {
		return "Campo requerido: " + first.Field(), fieldErrors
	}
	return fmt.Sprintf("%s: %s", first.Field(), fieldMessage(first)), fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return "es requerido"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no debe exceder %s caracteres", fe.Param())
		}
		return fmt.Sprintf("no debe exceder %s", fe.Param())

	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())

	case "email":
		return "debe ser un correo válido"

	case "uuid":
		return "debe ser un UUID válido"

	case "cedula":
		return "debe contener solo dígitos (9 a 12)"

	case "personname":
		return "solo se permiten letras y espacios"

	case "clock":
		return "debe tener formato HH:MM"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}

// IsValidUUID reports whether s looks like a UUID.
func IsValidUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

// IsValidCedula reports whether s is a digits-only national id.
func IsValidCedula(s string) bool {
	return cedulaRegex.MatchString(s)
}

// IsValidPersonName reports whether s has only letters and spaces.
func IsValidPersonName(s string) bool {
	return personNameRegex.MatchString(s)
}
