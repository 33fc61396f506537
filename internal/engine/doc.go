// Package engine implements the validator contract on top of kin-openapi.
// Model definitions are OpenAPI documents whose components.schemas entries
// act as declared record types; the x-namespace extension qualifies their
// names.
package engine
