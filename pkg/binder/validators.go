package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kmclassics/kmclassics/pkg/models"
)

var (
	contentPathRE = regexp.MustCompile(`^[^,\s]+(,[^,\s]+)*$`)
)

// bookIDValidator allows only identifiers that are safe to pass through to
// storage: ASCII letters, digits and underscores.
func bookIDValidator(fl validator.FieldLevel) bool {
	return models.ValidBookID(fl.Field().String())
}

// contentPathValidator accepts a comma separated list of section ids, or the
// empty string for a volume root.
func contentPathValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return contentPathRE.MatchString(value)
}
