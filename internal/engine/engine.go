package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-modelval/pkg/validator"
)

const (
	msgNoModel = "No model loaded. Please load a model first."
	msgNoType  = "No target type specified for validation. Please provide a type name."
)

// namespaceExtension names the document extension that supplies the namespace
// for fully-qualified type names.
const namespaceExtension = "x-namespace"

// Engine implements validator.Validator on top of kin-openapi. The model
// definition language is an OpenAPI document whose components.schemas entries
// are the declared record types.
//
// The loaded model is held as an immutable snapshot guarded by an RWMutex so
// validation calls may interleave freely; LoadModel calls themselves are not
// designed to run concurrently and must be serialized by callers.
type Engine struct {
	mu       sync.RWMutex
	model    *model
	rootType string

	log *slog.Logger
	ids validator.IdentifierGenerator
}

// Ensure the implementation satisfies the public interface.
var _ validator.Validator = (*Engine)(nil)

// model is an immutable snapshot built by a successful LoadModel call.
// Anything derived from a previous definition (schema index, declaration
// order, relationship slots) is rebuilt from scratch; nothing survives a
// reload.
type model struct {
	doc       *openapi3.T
	namespace string
	typeNames []string                       // fully qualified, declaration order
	schemas   map[string]*openapi3.SchemaRef // bare type name -> declaration
}

// New constructs an Engine from pre-resolved options.
func New(options validator.Options) *Engine {
	return &Engine{
		log: options.Logger,
		ids: options.Identifiers,
	}
}

// LoadModel replaces the current model with one parsed from definitionText.
// The previous model is discarded unconditionally: a failed reload leaves the
// engine unloaded rather than rolling back.
func (e *Engine) LoadModel(ctx context.Context, definitionText, rootType string) error {
	e.mu.Lock()
	e.model = nil
	e.rootType = ""
	e.mu.Unlock()

	snapshot, err := buildModel(ctx, definitionText)
	if err != nil {
		e.log.Error("model load failed", "error", err)
		return &validator.ModelLoadError{Cause: err}
	}

	e.mu.Lock()
	e.model = snapshot
	e.rootType = rootType
	e.mu.Unlock()

	e.log.Info("model loaded",
		"namespace", snapshot.namespace,
		"types", len(snapshot.typeNames),
		"rootType", rootType)
	return nil
}

// ValidateData checks data against the loaded model. Every failure path is
// folded into the result; this method never returns an error.
func (e *Engine) ValidateData(ctx context.Context, data any, typeName string) validator.ValidationResult {
	e.mu.RLock()
	m := e.model
	root := e.rootType
	e.mu.RUnlock()

	if m == nil {
		return failureResult("model", msgNoModel)
	}

	target := typeName
	if target == "" {
		target = root
	}
	if target == "" {
		return failureResult("type", msgNoType)
	}

	if err := ctx.Err(); err != nil {
		return genericFailureResult(err)
	}

	ref, _, err := m.resolve(target)
	if err != nil {
		return genericFailureResult(err)
	}

	canonical, err := canonicalize(data)
	if err != nil {
		return genericFailureResult(err)
	}

	if err := ref.Value.VisitJSON(canonical, openapi3.MultiErrors()); err != nil {
		verrs, structured := translateValidationError(err)
		if len(verrs) == 0 {
			message := "Validation failed"
			if structured && err.Error() != "" {
				message = err.Error()
			} else if !structured {
				return genericFailureResult(err)
			}
			verrs = []validator.ValidationError{{Field: "validation", Message: message}}
		}
		return validator.ValidationResult{IsValid: false, Errors: verrs}
	}

	return validator.ValidationResult{
		IsValid:       true,
		Errors:        []validator.ValidationError{},
		ValidatedData: canonical,
	}
}

// AvailableTypes returns the fully-qualified declared type names in
// definition order, or an empty slice when no model is loaded.
func (e *Engine) AvailableTypes() []string {
	e.mu.RLock()
	m := e.model
	e.mu.RUnlock()

	if m == nil {
		return []string{}
	}
	return append([]string(nil), m.typeNames...)
}

// IsLoaded reports whether a model is currently loaded.
func (e *Engine) IsLoaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model != nil
}

// RootType returns the stored default validation target, or "".
func (e *Engine) RootType() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rootType
}

// buildModel parses and consistency-checks a definition, then derives the
// lookup structures bound to it.
func buildModel(ctx context.Context, definitionText string) (*model, error) {
	if strings.TrimSpace(definitionText) == "" {
		return nil, errors.New("engine: definition text is empty")
	}
	raw := []byte(definitionText)

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("engine: parse definition: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("engine: model consistency: %w", err)
	}

	m := &model{
		doc:       doc,
		namespace: documentNamespace(doc),
		schemas:   map[string]*openapi3.SchemaRef{},
	}

	if doc.Components != nil {
		for name, ref := range doc.Components.Schemas {
			m.schemas[name] = ref
		}
	}

	order, err := declarationOrder(raw)
	if err != nil {
		order = nil
	}
	m.typeNames = make([]string, 0, len(m.schemas))
	seen := map[string]bool{}
	for _, name := range order {
		if _, ok := m.schemas[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		m.typeNames = append(m.typeNames, qualify(m.namespace, name))
	}
	// Anything the declaration scan missed still gets reported, in a stable
	// order.
	var missing []string
	for name := range m.schemas {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		m.typeNames = append(m.typeNames, qualify(m.namespace, name))
	}

	rewriteRelationshipSlots(m)

	return m, nil
}

// resolve maps a possibly-qualified type name to its declaration. The name is
// split on the last dot: the prefix must match the model namespace (or be
// empty), the suffix is the bare declaration name.
func (m *model) resolve(typeName string) (*openapi3.SchemaRef, string, error) {
	ns, bare := splitQualifiedName(typeName)
	if ns != "" && ns != m.namespace {
		return nil, "", fmt.Errorf("engine: unknown type %q", typeName)
	}
	ref, ok := m.schemas[bare]
	if !ok || ref == nil || ref.Value == nil {
		return nil, "", fmt.Errorf("engine: unknown type %q", typeName)
	}
	return ref, qualify(m.namespace, bare), nil
}

// documentNamespace reads the x-namespace extension, defaulting to "".
func documentNamespace(doc *openapi3.T) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc.Extensions[namespaceExtension]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// splitQualifiedName splits on the last dot. The prefix is the namespace
// (empty when there is no dot), the suffix the bare type name.
func splitQualifiedName(fq string) (namespace, name string) {
	idx := strings.LastIndex(fq, ".")
	if idx < 0 {
		return "", fq
	}
	return fq[:idx], fq[idx+1:]
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// canonicalize round-trips a value through JSON so validation and returned
// data always operate on plain map/slice/scalar trees.
func canonicalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("engine: serialize data: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("engine: serialize data: %w", err)
	}
	return out, nil
}

func failureResult(field, message string) validator.ValidationResult {
	return validator.ValidationResult{
		IsValid: false,
		Errors:  []validator.ValidationError{{Field: field, Message: message}},
	}
}

func genericFailureResult(err error) validator.ValidationResult {
	message := "Unknown validation error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return failureResult("validation", message)
}
