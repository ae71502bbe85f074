package canopy

import (
	"sort"
	"sync"
)

// NodeType tags the structural kind of a node. Tags compare by name; the
// built-in values are predeclared and RegisterNodeType adds new ones.
type NodeType struct {
	name string
}

// String returns the tag name.
func (t NodeType) String() string { return t.name }

// ShapeType tags the concrete kind of a shape node. It is the type tag used
// in documents for shapes.
type ShapeType struct {
	name string
}

// String returns the tag name.
func (t ShapeType) String() string { return t.name }

var (
	typesMu    sync.RWMutex
	nodeTypes  = map[string]NodeType{}
	shapeTypes = map[string]ShapeType{}
)

// RegisterNodeType returns the node type named name, creating it if needed.
func RegisterNodeType(name string) NodeType {
	typesMu.Lock()
	defer typesMu.Unlock()
	if t, ok := nodeTypes[name]; ok {
		return t
	}
	t := NodeType{name: name}
	nodeTypes[name] = t
	return t
}

// LookupNodeType returns the registered node type named name.
func LookupNodeType(name string) (NodeType, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := nodeTypes[name]
	return t, ok
}

// RegisterShapeType returns the shape type named name, creating it if needed.
func RegisterShapeType(name string) ShapeType {
	typesMu.Lock()
	defer typesMu.Unlock()
	if t, ok := shapeTypes[name]; ok {
		return t
	}
	t := ShapeType{name: name}
	shapeTypes[name] = t
	return t
}

// LookupShapeType returns the registered shape type named name.
func LookupShapeType(name string) (ShapeType, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := shapeTypes[name]
	return t, ok
}

// ShapeTypes returns every registered shape type sorted by name.
func ShapeTypes() []ShapeType {
	typesMu.RLock()
	out := make([]ShapeType, 0, len(shapeTypes))
	for _, t := range shapeTypes {
		out = append(out, t)
	}
	typesMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Built-in node types.
var (
	NodeTypeViewport = RegisterNodeType("Viewport")
	NodeTypeScene    = RegisterNodeType("Scene")
	NodeTypeLayer    = RegisterNodeType("Layer")
	NodeTypeGroup    = RegisterNodeType("Group")
	NodeTypeShape    = RegisterNodeType("Shape")
)

// Built-in shape types.
var (
	ShapeTypeRectangle      = RegisterShapeType("Rectangle")
	ShapeTypeCircle         = RegisterShapeType("Circle")
	ShapeTypeEllipse        = RegisterShapeType("Ellipse")
	ShapeTypeLine           = RegisterShapeType("Line")
	ShapeTypePolyLine       = RegisterShapeType("PolyLine")
	ShapeTypePolygon        = RegisterShapeType("Polygon")
	ShapeTypeRegularPolygon = RegisterShapeType("RegularPolygon")
	ShapeTypeStar           = RegisterShapeType("Star")
	ShapeTypeArc            = RegisterShapeType("Arc")
	ShapeTypeText           = RegisterShapeType("Text")
	ShapeTypePicture        = RegisterShapeType("Picture")
)
