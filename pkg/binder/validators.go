package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var identRE = regexp.MustCompile(`^[0-9A-Za-z_-]{1,64}$`)

// identValidator accepts the identifiers the legacy export uses for books and
// categories, or the empty string so that optional filters can be left out.
func identValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return identRE.MatchString(value)
}
