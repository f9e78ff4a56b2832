package errs

import (
	"net/http"
)

// Codes used by more than one package.
const (
	CodeAlreadyResolved = "ALREADY_RESOLVED"
	CodeNothingToUpdate = "NOTHING_TO_UPDATE"
	CodeValidation      = "VALIDATION_FAILED"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401. The action points the client to the
// login page.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
		Action: &Action{
			Type:    ActionTypeRedirect,
			Message: "Inicia sesión para continuar",
			Value:   "/login",
		},
	}
}

func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400. code defaults to BAD_REQUEST.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// BadRequest is shorthand for a 400 whose message is meant for the user.
func BadRequest(message string) *HTTPError {
	return NewBadRequestError(message, true, nil, nil, nil)
}

// BadRequestField is a 400 tied to a single input field.
func BadRequestField(field, message string) *HTTPError {
	code := CodeValidation
	return NewBadRequestError(message, true, &code, []FieldError{{Field: field, Error: message}}, nil)
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  "Demasiadas solicitudes, intenta de nuevo en unos segundos",
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  "Error interno",
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Datos inválidos: "+err.Error(), false, nil, nil, nil)
}
