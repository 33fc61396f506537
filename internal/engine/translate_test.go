package engine

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

func TestTranslateNonValidationError(t *testing.T) {
	entries, structured := translateValidationError(errors.New("boom"))
	if structured {
		t.Fatalf("plain errors are not structured validation failures")
	}
	if entries != nil {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestTranslateSchemaError(t *testing.T) {
	schema := openapi3.NewObjectSchema()
	schema.Properties = openapi3.Schemas{
		"age": openapi3.NewIntegerSchema().NewRef(),
	}

	err := schema.VisitJSON(map[string]any{"age": "old"}, openapi3.MultiErrors())
	if err == nil {
		t.Fatalf("expected a validation failure")
	}

	entries, structured := translateValidationError(err)
	if !structured {
		t.Fatalf("expected a structured validation failure")
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one entry")
	}
	if entries[0].Field != "age" {
		t.Fatalf("expected field %q, got %q", "age", entries[0].Field)
	}
	if entries[0].Message == "" {
		t.Fatalf("expected a message")
	}
	if entries[0].Value == nil {
		t.Fatalf("expected the offending value as context")
	}
}

func TestTranslateRequiredUsesPropertyName(t *testing.T) {
	schema := openapi3.NewObjectSchema()
	schema.Properties = openapi3.Schemas{
		"name": openapi3.NewStringSchema().NewRef(),
	}
	schema.Required = []string{"name"}

	err := schema.VisitJSON(map[string]any{}, openapi3.MultiErrors())
	if err == nil {
		t.Fatalf("expected a validation failure")
	}

	entries, _ := translateValidationError(err)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %+v", entries)
	}
	if entries[0].Field != "name" {
		t.Fatalf("expected field %q, got %q", "name", entries[0].Field)
	}
}

func TestQuotedProperty(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`property "name" is missing`, "name"},
		{`property "a.b" is missing`, "a.b"},
		{"no quotes here", ""},
		{`dangling "quote`, ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := quotedProperty(tc.in); got != tc.want {
			t.Fatalf("quotedProperty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
