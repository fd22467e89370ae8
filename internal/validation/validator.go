// Package validation checks entity shapes field by field and reports every
// failure with the message callers display for it.
package validation

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stitchdesk/crm/internal/domain"
	"github.com/ttacon/libphonenumber"
)

// DefaultPhoneRegion is used to parse phone numbers written without a
// country calling code
const DefaultPhoneRegion = "US"

const (
	minPhoneLength = 6
	maxPhoneLength = 18
)

// aliases name the composite format rules used in validate tags
var aliases = map[string]string{
	"username": "alphanum",
	"company":  "gte=1",
	"zip":      "postcode_iso3166_alpha2=US",
	"state":    "len=2,alpha",
	"country":  "min=2,max=3,alpha",
	"settings": "min=2,max=5000,json",
	"color":    "min=4,max=8,hexcolor",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, domain.Decimal{})

	for alias, tags := range aliases {
		v.RegisterAlias(alias, tags)
	}

	mustRegister(v, "phone", isPhone)
	mustRegister(v, "decimal", isDecimal)
	for tag, values := range domain.EnumTags() {
		mustRegister(v, tag, oneOf(values))
	}
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// jsonFieldName reports fields by their json name. Embedded structs keep
// their Go name so they can be dropped from error paths.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch {
	case name == "-":
		return ""
	case name == "":
		return fld.Name
	}
	return name
}

// decimalValue presents a Decimal to the validator as its literal text, or
// the empty string when the input was not an accepted encoding
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(domain.Decimal); ok && d.IsValid() {
		return d.String()
	}
	return ""
}

func isDecimal(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && domain.IsValidDecimalInput(s)
}

func isPhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < minPhoneLength || len(s) > maxPhoneLength {
		return false
	}
	num, err := libphonenumber.Parse(s, DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(num)
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(values, fl.Field().String())
	}
}
