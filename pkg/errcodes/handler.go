package errcodes

import (
	"fmt"
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
	golog "github.com/robinjoseph08/golib/logger"
)

// Body is the error object every failed API response carries.
type Body struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// Payload is the envelope written by Handle: {"error": {...}}.
type Payload struct {
	Error Body `json:"error"`
}

// AsError turns a decoded payload back into an *Error.
func (p Payload) AsError() *Error {
	return newError(p.Error.StatusCode, p.Error.Code, p.Error.Message)
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler. Errors from this package and echo keep
// their status; anything else is a logged 500.
func (h *Handler) Handle(err error, c echo.Context) {
	log := logger.FromEchoContext(c)
	if errutils.IsIgnorableErr(err) {
		log.Err(err).Warn("broken pipe")
		return
	}

	payload := NewPayload(err)
	if payload.Error.StatusCode == http.StatusInternalServerError {
		req := c.Request()
		log.Err(err).Error("server error", golog.Data{
			"method": req.Method,
			"path":   req.URL.Path,
		})
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(payload.Error.StatusCode)
	} else {
		err = c.JSON(payload.Error.StatusCode, payload)
	}
	if err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

// NewPayload builds the response envelope for err.
func NewPayload(err error) Payload {
	body := Body{StatusCode: http.StatusInternalServerError}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body.StatusCode = he.Code
		body.Message = fmt.Sprint(he.Message)
		body.Code = strcase.ToSnake(body.Message)
	}

	var e *Error
	if errors.As(err, &e) {
		body.StatusCode = e.HTTPCode
		body.Code = e.Code
		body.Message = e.Message
	}

	if body.StatusCode == http.StatusInternalServerError && body.Message == "" {
		body.Code = "internal_server_error"
		body.Message = "Internal Server Error"
	}

	return Payload{body}
}
