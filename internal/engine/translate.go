package engine

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelval/pkg/validator"
)

// translateValidationError converts an engine failure into field-level
// entries. The second return reports whether the failure was a structured
// validation error at all; anything else is the caller's problem to map.
func translateValidationError(err error) ([]validator.ValidationError, bool) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]validator.ValidationError, 0, len(multi))
		for _, item := range multi {
			out = append(out, flattenEntry(item)...)
		}
		return out, true
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return []validator.ValidationError{fromSchemaError(se)}, true
	}

	return nil, false
}

func flattenEntry(err error) []validator.ValidationError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []validator.ValidationError
		for _, item := range multi {
			out = append(out, flattenEntry(item)...)
		}
		return out
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return []validator.ValidationError{fromSchemaError(se)}
	}

	if err == nil {
		return nil
	}
	return []validator.ValidationError{{Field: "validation", Message: err.Error()}}
}

// fromSchemaError maps one engine failure to one entry: the failing value's
// dotted path becomes the field (falling back to the property named in the
// reason, then "unknown"), the reason becomes the message, and the offending
// value rides along as context.
func fromSchemaError(se *openapi3.SchemaError) validator.ValidationError {
	field := strings.Join(se.JSONPointer(), ".")
	if field == "" {
		field = quotedProperty(se.Reason)
	}
	if field == "" {
		field = "unknown"
	}

	message := se.Reason
	if message == "" && se.Origin != nil {
		message = se.Origin.Error()
	}
	if message == "" {
		message = "Validation error"
	}

	return validator.ValidationError{Field: field, Message: message, Value: se.Value}
}

// quotedProperty extracts the first double-quoted token from a reason string,
// e.g. `property "name" is missing` -> "name".
func quotedProperty(reason string) string {
	start := strings.Index(reason, `"`)
	if start < 0 {
		return ""
	}
	rest := reason[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
