package engine

import (
	"gopkg.in/yaml.v3"
)

// declarationOrder recovers the order components.schemas keys appear in the
// raw definition text. kin-openapi stores components in a map, so the
// declared order has to come from the document itself. Works for JSON input
// too since YAML is a superset.
func declarationOrder(raw []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	schemas := mappingValue(mappingValue(doc, "components"), "schemas")
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return nil, nil
	}

	names := make([]string, 0, len(schemas.Content)/2)
	for i := 0; i+1 < len(schemas.Content); i += 2 {
		names = append(names, schemas.Content[i].Value)
	}
	return names, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
