package canopy

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Document keys.
const (
	keyType       = "type"
	keyAttributes = "attributes"
	keyChildren   = "children"
)

// ErrNotObject is returned by ParseDocument when the top-level value is not
// an object.
var ErrNotObject = errors.New("canopy: document is not an object")

// Document is one node fragment in the generic value tree:
//
//	{"type": "Circle", "attributes": {"radius": 5}, "children": [...]}
//
// Values are in the store's value domain (see ValueType).
type Document map[string]any

// Type returns the type tag and whether it is a string.
func (d Document) Type() (string, bool) {
	s, ok := d[keyType].(string)
	return s, ok
}

// AttributeMap returns the attributes object, or nil.
func (d Document) AttributeMap() map[string]any {
	m, _ := d[keyAttributes].(map[string]any)
	return m
}

// ChildList returns the children array and whether it is present.
func (d Document) ChildList() ([]any, bool) {
	v, ok := d[keyChildren]
	if !ok || v == nil {
		return nil, false
	}
	l, _ := v.([]any)
	return l, true
}

// ParseDocument decodes a JSON or YAML document into normalized form.
func ParseDocument(data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("canopy: parse document: %w", err)
	}
	m, ok := normalizeValue(raw).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Document(m), nil
}

// asDocument normalizes any decoded value into a Document. It reports false
// for values that are not objects.
func asDocument(v any) (Document, bool) {
	switch x := v.(type) {
	case Document:
		m, _ := normalizeValue(map[string]any(x)).(map[string]any)
		return Document(m), true
	default:
		m, ok := normalizeValue(v).(map[string]any)
		if !ok {
			return nil, false
		}
		return Document(m), true
	}
}
