package validator

import "context"

// Validator owns a swappable model definition and validates structured data
// against it. Implementations live under internal/engine but satisfy this
// contract; callers construct one via the top-level modelval package and
// thread it explicitly instead of relying on shared globals.
//
// ValidateData and the introspection operations never return errors: every
// failure path is folded into the result value. LoadModel is the only
// operation that reports errors, and concurrent LoadModel calls must be
// serialized by the caller.
type Validator interface {
	// LoadModel parses definitionText and replaces any previously loaded
	// model. rootType optionally records a default validation target; pass ""
	// to clear it. On failure the validator is left unloaded and a
	// *ModelLoadError is returned.
	LoadModel(ctx context.Context, definitionText, rootType string) error

	// ValidateData checks data against the loaded model. typeName selects the
	// target type; when empty the stored root type is used. The result is
	// always well formed: Errors is non-empty exactly when IsValid is false,
	// and ValidatedData is set exactly when IsValid is true.
	ValidateData(ctx context.Context, data any, typeName string) ValidationResult

	// AvailableTypes returns the fully-qualified names of every declared type
	// in definition order, or an empty slice when no model is loaded.
	AvailableTypes() []string

	// CreateInstance builds a default-valued instance of the named type,
	// tagged with a generated identifier. It returns nil when no model is
	// loaded or the type cannot be constructed.
	CreateInstance(fullyQualifiedTypeName string) map[string]any

	// IsLoaded reports whether a model is currently loaded.
	IsLoaded() bool

	// RootType returns the stored default target type, or "" when unset.
	RootType() string
}

// ValidationResult is the uniform outcome of a ValidateData call.
type ValidationResult struct {
	IsValid       bool              `json:"isValid"`
	Errors        []ValidationError `json:"errors"`
	ValidatedData any               `json:"validatedData,omitempty"`
}

// ValidationError describes a single field-level failure. Ordering follows
// the order the underlying engine reports failures; no dedup or sort is
// applied.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}
