package canopy

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// ToDocument converts n and its descendants to a Document. Attribute values
// are copied; undefined values are omitted.
func ToDocument(n Node) Document {
	doc := Document{keyType: n.TypeName()}
	attrs := n.Attributes().Map()
	for k, v := range attrs {
		if typeOfValue(v) == ValueUndefined {
			delete(attrs, k)
		}
	}
	if len(attrs) > 0 {
		doc[keyAttributes] = attrs
	}
	if c, ok := n.(Container); ok && c.NumChildren() > 0 {
		children := make([]any, 0, c.NumChildren())
		for _, child := range c.Children() {
			children = append(children, map[string]any(ToDocument(child)))
		}
		doc[keyChildren] = children
	}
	return doc
}

// ToJSON encodes n as indented JSON.
func ToJSON(n Node) ([]byte, error) {
	data, err := json.MarshalIndent(map[string]any(ToDocument(n)), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("canopy: encode json: %w", err)
	}
	return data, nil
}

// ToYAML encodes n as YAML.
func ToYAML(n Node) ([]byte, error) {
	data, err := yaml.Marshal(map[string]any(ToDocument(n)))
	if err != nil {
		return nil, fmt.Errorf("canopy: encode yaml: %w", err)
	}
	return data, nil
}

// Copy returns a deep copy of n built through d without validation. The
// copy has no parent.
func (d *Deserializer) Copy(n Node) (Node, error) {
	return d.Deserialize(ToDocument(n), NewValidationContext().SetValidate(false))
}

// Copy returns a deep copy of n using the default registry.
func Copy(n Node) (Node, error) {
	return NewDeserializer(nil).Copy(n)
}

// Equivalent reports whether a and b serialize to the same JSON value,
// ignoring key order and formatting.
func Equivalent(a, b Node) (bool, error) {
	ja, err := ToJSON(a)
	if err != nil {
		return false, err
	}
	jb, err := ToJSON(b)
	if err != nil {
		return false, err
	}
	return EquivalentJSON(ja, jb)
}

// EquivalentJSON reports whether two JSON documents hold the same value.
func EquivalentJSON(a, b []byte) (bool, error) {
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return false, fmt.Errorf("canopy: compare documents: %w", err)
	}
	return string(patch) == "{}", nil
}

// AssignIDs gives every node in the tree without an ID a random UUID and
// returns how many were assigned.
func AssignIDs(root Node) int {
	assigned := 0
	Walk(root, func(n Node) bool {
		if n.Attributes().ID() == "" {
			n.Attributes().SetID(uuid.NewString())
			assigned++
		}
		return true
	})
	return assigned
}
