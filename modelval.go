package modelval

import (
	internalEngine "github.com/goliatone/go-modelval/internal/engine"
	internalLoader "github.com/goliatone/go-modelval/internal/loader"
	"github.com/goliatone/go-modelval/pkg/schema"
	"github.com/goliatone/go-modelval/pkg/validator"
)

// Validator re-exports the validation contract for convenience.
type Validator = validator.Validator

// ValidationResult is the uniform outcome of a ValidateData call.
type ValidationResult = validator.ValidationResult

// ValidationError describes a single field-level failure.
type ValidationError = validator.ValidationError

// ModelLoadError reports a failed LoadModel call.
type ModelLoadError = validator.ModelLoadError

// New constructs a Validator using the internal engine while keeping the
// concrete type hidden from consumers. Construct one per process (or per
// model) and thread it explicitly; there is no package-level singleton.
func New(options ...validator.Option) validator.Validator {
	return internalEngine.New(validator.NewOptions(options...))
}

// NewLoader constructs a model-definition loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// WithLogger re-exports the logger option.
var WithLogger = validator.WithLogger

// WithIdentifierGenerator re-exports the identifier strategy option.
var WithIdentifierGenerator = validator.WithIdentifierGenerator
