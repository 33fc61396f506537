package engine

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const componentRefPrefix = "#/components/schemas/"

// rewriteRelationshipSlots widens every property that references another
// declared type so a reference-by-identity (a plain string identifier)
// satisfies a slot declaring an embedded record. Embedded objects are never
// down-converted to references; the original declaration stays a valid match.
func rewriteRelationshipSlots(m *model) {
	for _, ref := range m.schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		for name, prop := range ref.Value.Properties {
			switch {
			case declaredTarget(m, prop) != "":
				ref.Value.Properties[name] = refOrIdentity(prop)
			case prop != nil && prop.Value != nil && declaredTarget(m, prop.Value.Items) != "":
				prop.Value.Items = refOrIdentity(prop.Value.Items)
			}
		}
	}
}

// declaredTarget returns the bare name of the declared type a ref points at,
// or "" when the ref is absent or points outside the model.
func declaredTarget(m *model, ref *openapi3.SchemaRef) string {
	if ref == nil || !strings.HasPrefix(ref.Ref, componentRefPrefix) {
		return ""
	}
	bare := strings.TrimPrefix(ref.Ref, componentRefPrefix)
	if _, ok := m.schemas[bare]; !ok {
		return ""
	}
	return bare
}

// refOrIdentity wraps a relationship slot in oneOf[declared schema, string].
func refOrIdentity(ref *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			OneOf: openapi3.SchemaRefs{ref, openapi3.NewStringSchema().NewRef()},
		},
	}
}

// isRelationshipSlot reports whether a schema carries the shape produced by
// refOrIdentity.
func isRelationshipSlot(s *openapi3.Schema) bool {
	if s == nil || len(s.OneOf) != 2 {
		return false
	}
	alt := s.OneOf[1]
	return s.OneOf[0].Ref != "" && alt != nil && alt.Value != nil &&
		alt.Value.Type != nil && alt.Value.Type.Includes(openapi3.TypeString)
}
