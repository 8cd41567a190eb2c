package errcodes

import (
	"fmt"
	"net/http"
)

// Machine readable codes sent in the "code" field of an error body.
const (
	CodeConflict             = "conflict"
	CodeEmptyRequestBody     = "empty_request_body"
	CodeInvalidArgument      = "invalid_argument"
	CodeMalformedPayload     = "malformed_payload"
	CodeMissingParameter     = "missing_parameter"
	CodeNotFound             = "not_found"
	CodeUnknownParameter     = "unknown_parameter"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeValidationError      = "validation_error"
	CodeValidationTypeError  = "validation_type_error"
)

// Error is an error that knows the HTTP status it should be reported with.
// Anything else reaching the error handler becomes a 500.
type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func newError(status int, code, msg string) *Error {
	return &Error{HTTPCode: status, Message: msg, Code: code}
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if ok {
		*te = *err
	}
	return ok
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	return ok && *te == *err
}

// MissingParameter returns a 400 for a required parameter that was omitted.
func MissingParameter(param string) error {
	return newError(http.StatusBadRequest, CodeMissingParameter, fmt.Sprintf("Missing Parameter %q", param))
}

// InvalidArgument returns a 400 for a request that is well formed but can't be
// answered, like asking for the children of a leaf.
func InvalidArgument(msg string) error {
	return newError(http.StatusBadRequest, CodeInvalidArgument, msg)
}

func MalformedPayload() error {
	return newError(http.StatusBadRequest, CodeMalformedPayload, "Malformed Payload")
}

func EmptyRequestBody() error {
	return newError(http.StatusBadRequest, CodeEmptyRequestBody, "Request body can't be empty.")
}

// NotFound returns a 404 naming the missing resource, e.g. NotFound("Book").
func NotFound(resource string) error {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found.")
}

// Conflict is returned when a write collides with an existing row.
func Conflict(msg string) error {
	return newError(http.StatusConflict, CodeConflict, msg)
}

func UnsupportedMediaType() error {
	return newError(http.StatusUnsupportedMediaType, CodeUnsupportedMediaType, "Unsupported Media Type")
}

func UnknownParameter(param string) error {
	return newError(http.StatusUnprocessableEntity, CodeUnknownParameter, fmt.Sprintf("Unknown Parameter %q", param))
}

func ValidationTypeError(msg string) error {
	return newError(http.StatusUnprocessableEntity, CodeValidationTypeError, msg)
}

func ValidationError(msg string) error {
	return newError(http.StatusUnprocessableEntity, CodeValidationError, msg)
}
