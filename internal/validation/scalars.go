package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/stitchdesk/crm/internal/domain"
)

// UsernameKind selects the length range a username must fall in
type UsernameKind int

const (
	// UsernameSalesRep is a sales rep's own handle, 2 to 10 characters
	UsernameSalesRep UsernameKind = iota
	// UsernameReference is a reference to a rep from another entity, 2 to 20 characters
	UsernameReference
	// UsernameColorSettings keys color settings, exactly 2 characters
	UsernameColorSettings
)

var usernameTags = map[UsernameKind]string{
	UsernameSalesRep:      "required,min=2,max=10,username",
	UsernameReference:     "required,min=2,max=20,username",
	UsernameColorSettings: "required,len=2,username",
}

func ValidateEmail(s string) *FieldError {
	return checkVar("email", s, "required,email")
}

func ValidatePhone(s string) *FieldError {
	return checkVar("phone", s, "phone")
}

func ValidateHexColor(s string) *FieldError {
	return checkVar("color", s, "color")
}

func ValidateUsername(s string, kind UsernameKind) *FieldError {
	tags, ok := usernameTags[kind]
	if !ok {
		tags = usernameTags[UsernameReference]
	}
	return checkVar("username", s, tags)
}

func ValidateZip(s string) *FieldError {
	return checkVar("zip", s, "zip")
}

func ValidateState(s string) *FieldError {
	return checkVar("state", s, "state")
}

func ValidateCountry(s string) *FieldError {
	return checkVar("country", s, "country")
}

// ValidateSettings checks a serialized settings document. Only its size and
// that it parses as JSON are checked.
func ValidateSettings(s string) *FieldError {
	return checkVar("settings", s, "settings")
}

func ValidateCompanyID(id int) *FieldError {
	return checkVar("companyId", id, "company")
}

// ValidateFiniteDecimal checks a decimal that is about to be stored.
// Infinity and NaN are valid inputs but have no column representation.
func ValidateFiniteDecimal(field string, d domain.Decimal) *FieldError {
	if !d.IsValid() {
		fe := newFieldError(field, "decimal")
		return &fe
	}
	if !d.IsFinite() {
		fe := newFieldError(field, "finite")
		return &fe
	}
	return nil
}

func checkVar(field string, value any, tags string) *FieldError {
	err := validate.Var(value, tags)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return &FieldError{Field: field, Tag: tags, Message: err.Error()}
	}
	fe := FieldError{Field: field, Tag: ve[0].Tag(), Message: formatValidationError(field, ve[0])}
	return &fe
}
