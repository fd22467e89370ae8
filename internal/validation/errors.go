package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/stitchdesk/crm/internal/domain"
)

// ErrMalformed is returned by Parse when the input is not a JSON document
var ErrMalformed = errors.New("malformed input")

// FieldError is a single field that failed its check. Field is the json
// path of the field, e.g. "salesRep.username" or "emails[1].email".
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors collects every field that failed validation
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i := range e {
		parts[i] = e[i].Error()
	}
	return strings.Join(parts, "; ")
}

// Field returns the first error reported for the json path
func (e Errors) Field(path string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == path {
			return fe, true
		}
	}
	return FieldError{}, false
}

func newFieldError(field, tag string) FieldError {
	return FieldError{Field: field, Tag: tag, Message: domain.GetValidationMessage(lastSegment(field), tag)}
}

// fromValidator converts validator failures into Errors
func fromValidator(ve validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		field := fieldPath(fe.Namespace())
		out = append(out, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Message: formatValidationError(lastSegment(field), fe),
		})
	}
	return out
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return domain.GetValidationMessage(field, fe.Tag())
	}
}

// fieldPath turns a validator namespace into a json path. The root type
// name and the Go names of embedded structs are dropped.
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 0 {
		segments = segments[1:]
	}
	kept := segments[:0]
	for _, s := range segments {
		if s == "" {
			continue
		}
		if unicode.IsUpper([]rune(s)[0]) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, ".")
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	return path
}
