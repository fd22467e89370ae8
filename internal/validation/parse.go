package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Parse decodes raw into a T and validates it. Unknown fields are rejected.
// Every failing field is reported in the returned Errors; a document that is
// not JSON at all yields an error wrapping ErrMalformed instead.
func Parse[T any](raw []byte) (*T, error) {
	var out T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var decodeErrs Errors
	if err := dec.Decode(&out); err != nil {
		fe, ok := decodeFieldError(err)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// decoding stops at an unknown field, so the rest of out is unreliable
		if fe.Tag == "unknown" {
			return nil, Errors{fe}
		}
		decodeErrs = append(decodeErrs, fe)
	} else if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}

	errs := decodeErrs
	if err := Struct(&out); err != nil {
		var ve Errors
		if !errors.As(err, &ve) {
			return nil, err
		}
		for _, fe := range ve {
			// the decoder already reported why this field is unusable
			if _, seen := decodeErrs.Field(fe.Field); seen {
				continue
			}
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

// Struct validates an in-memory value and returns Errors listing every
// failing field, or nil.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fromValidator(ve)
	}
	return err
}

// decodeFieldError maps decoder failures that concern a single field
func decodeFieldError(err error) (FieldError, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newFieldError(typeErr.Field, "type"), true
	}
	// encoding/json reports unknown fields only through the message text
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		if unquoted, uerr := strconv.Unquote(name); uerr == nil {
			name = unquoted
		}
		return newFieldError(name, "unknown"), true
	}
	return FieldError{}, false
}
