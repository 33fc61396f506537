// Package validation exposes a Validator over HTTP as a mountable component:
// JSON endpoints for validating data, listing declared types, creating stub
// instances, and loading model definitions. The component carries no global
// state; wire it against any validator instance and mount it on any mux.
package validation
