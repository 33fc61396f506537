package engine

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// classProperty tags created instances with their fully-qualified type name.
const classProperty = "$class"

// identifierExtension names the schema extension that selects the identifier
// property for created instances.
const identifierExtension = "x-identifier"

const defaultIdentifierProperty = "id"

// CreateInstance builds a default-valued instance of the named type, tagged
// with a generated identifier. It returns nil when no model is loaded or the
// type cannot be constructed; failures are logged, never raised.
func (e *Engine) CreateInstance(fullyQualifiedTypeName string) map[string]any {
	e.mu.RLock()
	m := e.model
	e.mu.RUnlock()

	if m == nil {
		e.log.Debug("create instance skipped: no model loaded", "type", fullyQualifiedTypeName)
		return nil
	}

	ref, fqName, err := m.resolve(fullyQualifiedTypeName)
	if err != nil {
		e.log.Warn("create instance failed", "type", fullyQualifiedTypeName, "error", err)
		return nil
	}

	instance := e.defaultObject(ref.Value, map[*openapi3.Schema]bool{})
	instance[classProperty] = fqName
	instance[identifierProperty(ref.Value)] = e.ids.NewID()

	canonical, err := canonicalize(instance)
	if err != nil {
		e.log.Warn("create instance failed", "type", fullyQualifiedTypeName, "error", err)
		return nil
	}
	object, ok := canonical.(map[string]any)
	if !ok {
		e.log.Warn("create instance failed: non-object result", "type", fullyQualifiedTypeName)
		return nil
	}
	return object
}

func identifierProperty(s *openapi3.Schema) string {
	if s == nil {
		return defaultIdentifierProperty
	}
	if v, ok := s.Extensions[identifierExtension]; ok {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}
	return defaultIdentifierProperty
}

// defaultObject fills every declared property with its schema default or a
// zero value. The visited set guards recursive declarations.
func (e *Engine) defaultObject(s *openapi3.Schema, visited map[*openapi3.Schema]bool) map[string]any {
	out := map[string]any{}
	if s == nil || visited[s] {
		return out
	}
	visited[s] = true
	defer delete(visited, s)

	for name, prop := range s.Properties {
		out[name] = e.defaultValue(prop, visited)
	}
	return out
}

func (e *Engine) defaultValue(ref *openapi3.SchemaRef, visited map[*openapi3.Schema]bool) any {
	if ref == nil || ref.Value == nil {
		return nil
	}
	s := ref.Value

	if s.Default != nil {
		return s.Default
	}
	if len(s.Enum) > 0 {
		return s.Enum[0]
	}
	// Relationship slots default to a reference-by-identity placeholder.
	if isRelationshipSlot(s) {
		return e.ids.NewID()
	}

	switch {
	case s.Type.Includes(openapi3.TypeString):
		return ""
	case s.Type.Includes(openapi3.TypeNumber):
		return 0.0
	case s.Type.Includes(openapi3.TypeInteger):
		return 0
	case s.Type.Includes(openapi3.TypeBoolean):
		return false
	case s.Type.Includes(openapi3.TypeArray):
		return []any{}
	case s.Type.Includes(openapi3.TypeObject), len(s.Properties) > 0:
		return e.defaultObject(s, visited)
	default:
		return nil
	}
}
