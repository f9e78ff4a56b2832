package errs

import "strings"

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action tells the client what to do next, e.g. redirect to /login.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is an error that carries its own HTTP status and client payload.
//
// Override marks messages that are safe to show verbatim; when false the
// client may substitute a generic message.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError so errors.Is(err, &HTTPError{}) works as a type check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy with a different message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// Response is the JSON body written for every failed request.
type Response struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Status int          `json:"status"`
	Errors []FieldError `json:"errors,omitempty"`
	Action *Action      `json:"action,omitempty"`
	Hint   string       `json:"hint,omitempty"`
}

// ToResponse converts the error into its wire form.
func (e *HTTPError) ToResponse() Response {
	resp := Response{
		Error:  e.Message,
		Code:   e.Code,
		Status: e.Status,
		Errors: e.Errors,
		Action: e.Action,
	}
	if e.Action != nil {
		resp.Hint = e.Action.Message
	}
	return resp
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
