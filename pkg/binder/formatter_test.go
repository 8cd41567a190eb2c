package binder

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldError(t *testing.T, in interface{}) validator.FieldError {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	var errs validator.ValidationErrors
	require.ErrorAs(t, b.validate.Struct(in), &errs)
	return errs[0]
}

func TestFormatValidationError(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		msg  string
	}{
		{"book id", struct {
			V string `json:"value" validate:"bookid"`
		}{"MC-1"}, `"value" may only contain letters, digits and underscores`},
		{"content path", struct {
			V string `json:"value" validate:"contentpath"`
		}{"1,,2"}, `"value" must be a comma separated list of section ids`},
		{"exact length", struct {
			V string `json:"value" validate:"len=2"`
		}{"abc"}, `"value" length must be exactly 2 characters`},
		{"exact length singular", struct {
			V string `json:"value" validate:"len=1"`
		}{"ab"}, `"value" length must be exactly 1 character`},
		{"string max", struct {
			V string `json:"value" validate:"max=3"`
		}{"abcd"}, `"value" length must be less than or equal to 3 characters`},
		{"string min", struct {
			V string `json:"value" validate:"min=2"`
		}{"a"}, `"value" length must be greater than or equal to 2 characters`},
		{"int max", struct {
			V int `json:"value" validate:"max=50"`
		}{51}, `"value" must be less than or equal to 50`},
		{"int min", struct {
			V int `json:"value" validate:"min=1"`
		}{0}, `"value" must be greater than or equal to 1`},
		{"float min", struct {
			V float64 `json:"value" validate:"min=0.5"`
		}{0.1}, `"value" must be greater than or equal to 0.5`},
		{"slice max", struct {
			V []int `json:"value" validate:"max=1"`
		}{[]int{1, 2}}, `"value" length must be less than or equal to 1 element`},
		{"slice min", struct {
			V []string `json:"value" validate:"min=2"`
		}{[]string{"a"}}, `"value" length must be greater than or equal to 2 elements`},
		{"map max", struct {
			V map[string]int `json:"value" validate:"max=1"`
		}{map[string]int{"a": 1, "b": 2}}, `"value" length must be less than or equal to 1 element`},
		{"oneof", struct {
			V string `json:"value" validate:"oneof=on off"`
		}{"maybe"}, `"value" must be one of the following: "on", "off"`},
		{"required", struct {
			V string `json:"value" validate:"required"`
		}{""}, `"value" is required`},
		{"query tag names the field", struct {
			V int `query:"volumeNum" validate:"min=1"`
		}{0}, `"volumeNum" must be greater than or equal to 1`},
		{"unhandled tag", struct {
			V int `json:"value" validate:"gt=0"`
		}{0}, `"value" failed the gt check`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.msg, formatValidationError(fieldError(t, tc.in)))
		})
	}
}

func TestFormatSchemaConversionError(t *testing.T) {
	err := schema.ConversionError{Key: "volumeNum", Type: reflect.TypeOf(0)}
	assert.Equal(t, `"volumeNum" should be of type int`, formatSchemaConversionError(err))
}

func TestUnit(t *testing.T) {
	assert.Equal(t, "character", unit(reflect.String, "1"))
	assert.Equal(t, "characters", unit(reflect.String, "0"))
	assert.Equal(t, "elements", unit(reflect.Slice, "3"))
	assert.Equal(t, "element", unit(reflect.Map, "1"))
}
