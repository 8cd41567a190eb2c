package binder

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder implements echo.Binder. Query strings and bodies are decoded into the
// target struct, cleaned up with mold, defaulted and then validated.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance with the appropriate validation
// functions registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	if err := validate.RegisterValidation(bookID, bookIDValidator); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validate.RegisterValidation(contentPath, contentPathValidator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Binder{queryDecoder, formDecoder, conform, validate}, nil
}

// flag reads a per-request binder switch set with c.Set, e.g.
// "disallow_unknown_fields".
func flag(c echo.Context, key string, fallback bool) bool {
	if v, ok := c.Get(key).(bool); ok {
		return v
	}
	return fallback
}

// Bind fills i from path params and then the body or the query string, applies
// mod and default tags, and validates the result.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()

	if err := (&echo.DefaultBinder{}).BindPathParams(c, i); err != nil {
		return errcodes.ValidationTypeError(err.Error())
	}

	var err error
	switch {
	case req.ContentLength > 0:
		err = b.bindBody(c, i)
	case req.Method == http.MethodGet, req.Method == http.MethodHead, req.Method == http.MethodDelete:
		err = b.decodeQuery(i, c.QueryParams(), b.queryDecoder)
	case flag(c, "disallow_empty_body", true):
		err = errcodes.EmptyRequestBody()
	}
	if err != nil {
		return err
	}

	if err := b.conform.Struct(req.Context(), i); err != nil {
		return errors.WithStack(err)
	}
	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	return b.Validate(i)
}

func (b *Binder) bindBody(c echo.Context, i interface{}) error {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		defer req.Body.Close()
		return decodeJSON(c, req.Body, i)
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
		params, err := c.FormParams()
		if err != nil {
			return errcodes.MalformedPayload()
		}
		return b.decodeQuery(i, params, b.formDecoder)
	default:
		return errcodes.UnsupportedMediaType()
	}
}

func decodeJSON(c echo.Context, body io.Reader, i interface{}) error {
	dec := json.NewDecoder(body)
	if flag(c, "disallow_unknown_fields", true) {
		dec.DisallowUnknownFields()
	}
	err := dec.Decode(i)
	if err == nil {
		return nil
	}

	if m := unknownFieldsRE.FindStringSubmatch(err.Error()); len(m) > 1 {
		return errcodes.UnknownParameter(m[1])
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
	}

	logger.FromEchoContext(c).Err(err).Error("unknown json decode error")
	return errcodes.MalformedPayload()
}

// Validate runs the struct's validate tags. Missing required values become a
// 400 so callers can tell them apart from malformed ones.
func (b *Binder) Validate(i interface{}) error {
	err := b.validate.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errors.WithStack(err)
	}
	msg := formatValidationError(errs[0])
	if errs[0].Tag() == required {
		return errcodes.MissingParameter(errs[0].Field())
	}
	return errcodes.ValidationError(msg)
}

func (b *Binder) decodeQuery(i interface{}, params url.Values, decoder *schema.Decoder) error {
	if err := decoder.Decode(i, params); err != nil {
		if errs, ok := err.(schema.MultiError); ok {
			var err error
			for _, err = range errs {
				break
			}

			if err, ok := err.(schema.ConversionError); ok {
				msg := formatSchemaConversionError(err)
				return errcodes.ValidationTypeError(msg)
			}
			if err, ok := err.(schema.UnknownKeyError); ok {
				return errcodes.UnknownParameter(err.Key)
			}

			return errors.WithStack(err)
		}
		return errors.WithStack(err)
	}
	return nil
}
