package binder

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Hello string `json:"hello" mod:"trim" validate:"max=9"`
	Omit  string `json:"-"`
}

type childrenQuery struct {
	BookID    string  `param:"bookId" validate:"required,bookid"`
	VolumeNum *int    `query:"volumeNum" validate:"required,min=1"`
	Path      *string `query:"path" validate:"omitempty,contentpath"`
	Limit     int     `query:"limit" default:"10" validate:"min=1,max=50"`
}

var (
	goodJSON             = `{"hello":" world "}`
	unknownFieldsErrJSON = `{"hello":"world","foo":"bar"}`
	typeErrJSON          = `{"hello":123}`
	validationErrJSON    = `{"hello":"0123456789"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and application/x-www-form-urlencoded", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"hello" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})
}

func TestBindQuery(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("binds path and query params", func(tt *testing.T) {
		c := newGetContext("/?volumeNum=2&path=1,3", "MC_00008")
		q := childrenQuery{}
		require.NoError(tt, b.Bind(&q, c))
		assert.Equal(tt, "MC_00008", q.BookID)
		require.NotNil(tt, q.VolumeNum)
		assert.Equal(tt, 2, *q.VolumeNum)
		require.NotNil(tt, q.Path)
		assert.Equal(tt, "1,3", *q.Path)
		assert.Equal(tt, 10, q.Limit)
	})

	t.Run("missing required param is a 400", func(tt *testing.T) {
		c := newGetContext("/?path=1", "MC_00008")
		q := childrenQuery{}
		err := b.Bind(&q, c)
		var e *errcodes.Error
		require.True(tt, errors.As(err, &e))
		assert.Equal(tt, http.StatusBadRequest, e.HTTPCode)
		assert.Contains(tt, e.Message, "volumeNum")
	})

	t.Run("rejects unsafe book ids", func(tt *testing.T) {
		c := newGetContext("/?volumeNum=1", "MC;DROP")
		q := childrenQuery{}
		err := b.Bind(&q, c)
		assert.Contains(tt, err.Error(), "letters, digits and underscores")
	})

	t.Run("rejects malformed paths", func(tt *testing.T) {
		c := newGetContext("/?volumeNum=1&path=1,,2", "MC_00008")
		q := childrenQuery{}
		err := b.Bind(&q, c)
		assert.Contains(tt, err.Error(), "comma separated list")
	})

	t.Run("type errors name the parameter", func(tt *testing.T) {
		c := newGetContext("/?volumeNum=abc", "MC_00008")
		q := childrenQuery{}
		err := b.Bind(&q, c)
		assert.Contains(tt, err.Error(), `"volumeNum" should be of type`)
	})
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

func newGetContext(target, bookID string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.SetParamNames("bookId")
	c.SetParamValues(bookID)
	return c
}
