package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	bookID      = "bookid"
	contentPath = "contentpath"
	length      = "len"
	mx          = "max"
	mn          = "min"
	oneof       = "oneof"
	required    = "required"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func isNumber(k reflect.Kind) bool {
	//exhaustive:ignore
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// unit names what a length bound counts, pluralized for param.
func unit(k reflect.Kind, param string) string {
	u := "character"
	if k == reflect.Slice || k == reflect.Map {
		u = "element"
	}
	if param != "1" {
		u += "s"
	}
	return u
}

// bound formats min, max and len. Numbers are compared by value, everything
// else by length.
func bound(err validator.FieldError, relation string) string {
	field, param := err.Field(), err.Param()
	if isNumber(err.Kind()) {
		return fmt.Sprintf("%q must be %s %s", field, relation, param)
	}
	return fmt.Sprintf("%q length must be %s %s %s", field, relation, param, unit(err.Kind(), param))
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case bookID:
		return fmt.Sprintf("%q may only contain letters, digits and underscores", field)
	case contentPath:
		return fmt.Sprintf("%q must be a comma separated list of section ids", field)
	case length:
		return bound(err, "exactly")
	case mx:
		return bound(err, "less than or equal to")
	case mn:
		return bound(err, "greater than or equal to")
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q failed the %s check", field, err.Tag())
	}
}
