package testsupport

import (
	"context"
	"strconv"
	"testing"

	"github.com/goliatone/go-modelval/pkg/validator"
)

// PersonModel is a minimal definition declaring a single record type with a
// required field, used across package tests.
const PersonModel = `
openapi: 3.0.3
info:
  title: Example Model
  version: 1.0.0
x-namespace: org.example
paths: {}
components:
  schemas:
    Person:
      type: object
      required: [name]
      properties:
        name:
          type: string
`

// CatalogModel declares multiple record types, including a relationship slot,
// for introspection and reference tests.
const CatalogModel = `
openapi: 3.0.3
info:
  title: Catalog Model
  version: 1.0.0
x-namespace: org.catalog
paths: {}
components:
  schemas:
    Product:
      type: object
      x-identifier: sku
      required: [sku, title]
      properties:
        sku:
          type: string
        title:
          type: string
        price:
          type: number
        vendor:
          $ref: '#/components/schemas/Vendor'
    Vendor:
      type: object
      required: [name]
      properties:
        name:
          type: string
        active:
          type: boolean
`

// MustLoad loads a definition into v and fails the test on error.
func MustLoad(t *testing.T, v validator.Validator, definition, rootType string) {
	t.Helper()

	if err := v.LoadModel(context.Background(), definition, rootType); err != nil {
		t.Fatalf("load model: %v", err)
	}
}

// SequentialIDs returns an IdentifierGenerator yielding id-1, id-2, ... so
// tests can assert on generated identifiers.
func SequentialIDs() validator.IdentifierGenerator {
	n := 0
	return validator.IdentifierFunc(func() string {
		n++
		return "id-" + strconv.Itoa(n)
	})
}
