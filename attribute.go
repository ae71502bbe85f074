package canopy

import (
	"sort"
	"sync"
)

// Attribute describes a named, typed node property. Attributes are compared
// by property name: two descriptors with the same property are the same
// attribute.
type Attribute struct {
	property    string
	label       string
	description string
	typ         AttributeType
}

// NewAttribute defines an attribute and adds it to the process-wide catalog.
// If the property is already cataloged the existing entry keeps serving
// LookupAttribute; the new descriptor is still usable and Equal to it.
func NewAttribute(property, label, description string, typ AttributeType) *Attribute {
	a := &Attribute{property: property, label: label, description: description, typ: typ}
	catalogMu.Lock()
	if _, exists := catalog[property]; !exists {
		catalog[property] = a
	}
	catalogMu.Unlock()
	return a
}

// Property returns the document key.
func (a *Attribute) Property() string { return a.property }

// Label returns a short human-readable name.
func (a *Attribute) Label() string { return a.label }

// Description returns a one-line description.
func (a *Attribute) Description() string { return a.description }

// Type returns the attribute's validator.
func (a *Attribute) Type() AttributeType { return a.typ }

// Equal reports whether a and other name the same property.
func (a *Attribute) Equal(other *Attribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.property == other.property
}

// String returns the property name.
func (a *Attribute) String() string { return a.property }

var (
	catalogMu sync.RWMutex
	catalog   = map[string]*Attribute{}
)

// LookupAttribute returns the cataloged attribute for property.
func LookupAttribute(property string) (*Attribute, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	a, ok := catalog[property]
	return a, ok
}

// CatalogAttributes returns every cataloged attribute sorted by property.
func CatalogAttributes() []*Attribute {
	catalogMu.RLock()
	out := make([]*Attribute, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, a)
	}
	catalogMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].property < out[j].property })
	return out
}

// Built-in attributes.
var (
	AttrID        = NewAttribute("id", "ID", "Unique identifier of the node", StringType)
	AttrName      = NewAttribute("name", "Name", "Free-form name of the node", StringType)
	AttrVisible   = NewAttribute("visible", "Visible", "Whether the node is drawn", BooleanType)
	AttrListening = NewAttribute("listening", "Listening", "Whether the node receives events", BooleanType)
	AttrTransform = NewAttribute("transform", "Transform", "Explicit transform overriding rotation, scale, shear and offset", TransformType)

	AttrX        = NewAttribute("x", "X", "X coordinate", NumberType)
	AttrY        = NewAttribute("y", "Y", "Y coordinate", NumberType)
	AttrAlpha    = NewAttribute("alpha", "Alpha", "Opacity between 0 and 1", NumberType)
	AttrRotation = NewAttribute("rotation", "Rotation", "Rotation in radians", NumberType)
	AttrScale    = NewAttribute("scale", "Scale", "Scale factors {x, y}", Point2DType)
	AttrShear    = NewAttribute("shear", "Shear", "Shear factors {x, y}", Point2DType)
	AttrOffset   = NewAttribute("offset", "Offset", "Offset applied after rotation, scale and shear", Point2DType)

	AttrFill        = NewAttribute("fill", "Fill", "Fill color or gradient", FillType)
	AttrStrokeColor = NewAttribute("strokeColor", "Stroke Color", "Stroke color", ColorType)
	AttrStrokeWidth = NewAttribute("strokeWidth", "Stroke Width", "Stroke width in pixels", NumberType)
	AttrLineJoin    = NewAttribute("lineJoin", "Line Join", "Corner style of strokes", LineJoinType)
	AttrLineCap     = NewAttribute("lineCap", "Line Cap", "End style of strokes", LineCapType)
	AttrDashArray   = NewAttribute("dashArray", "Dash Array", "Alternating dash and gap lengths", NumberArrayType)
	AttrShadow      = NewAttribute("shadow", "Shadow", "Drop shadow", ShadowType)

	AttrDraggable      = NewAttribute("draggable", "Draggable", "Whether the node can be dragged", BooleanType)
	AttrDragConstraint = NewAttribute("dragConstraint", "Drag Constraint", "Axis a drag is limited to", DragConstraintType)
	AttrDragBounds     = NewAttribute("dragBounds", "Drag Bounds", "Area a drag is limited to", DragBoundsType)

	AttrWidth            = NewAttribute("width", "Width", "Width in pixels", NumberType)
	AttrHeight           = NewAttribute("height", "Height", "Height in pixels", NumberType)
	AttrRadius           = NewAttribute("radius", "Radius", "Radius in pixels", NumberType)
	AttrCornerRadius     = NewAttribute("cornerRadius", "Corner Radius", "Rounded corner radius", NumberType)
	AttrPoints           = NewAttribute("points", "Points", "Vertices of the shape", Point2DArrayType)
	AttrSides            = NewAttribute("sides", "Sides", "Number of polygon sides", NumberType)
	AttrStarPoints       = NewAttribute("starPoints", "Star Points", "Number of star tips", NumberType)
	AttrInnerRadius      = NewAttribute("innerRadius", "Inner Radius", "Inner radius of a star", NumberType)
	AttrOuterRadius      = NewAttribute("outerRadius", "Outer Radius", "Outer radius of a star", NumberType)
	AttrStartAngle       = NewAttribute("startAngle", "Start Angle", "Arc start angle in radians", NumberType)
	AttrEndAngle         = NewAttribute("endAngle", "End Angle", "Arc end angle in radians", NumberType)
	AttrCounterClockwise = NewAttribute("counterClockwise", "Counter Clockwise", "Arc direction", BooleanType)

	AttrText         = NewAttribute("text", "Text", "Text content", StringType)
	AttrFontSize     = NewAttribute("fontSize", "Font Size", "Font size in points", NumberType)
	AttrFontFamily   = NewAttribute("fontFamily", "Font Family", "Font family name", StringType)
	AttrFontStyle    = NewAttribute("fontStyle", "Font Style", "Font style such as bold or italic", StringType)
	AttrTextAlign    = NewAttribute("textAlign", "Text Align", "Horizontal text alignment", TextAlignType)
	AttrTextBaseline = NewAttribute("textBaseline", "Text Baseline", "Vertical text alignment", TextBaselineType)

	AttrURL = NewAttribute("url", "URL", "Image resource location", StringType)

	AttrClearLayerBeforeDraw = NewAttribute("clearLayerBeforeDraw", "Clear Layer", "Whether the layer is cleared before drawing", BooleanType)
	AttrZoomable             = NewAttribute("zoomable", "Zoomable", "Whether the layer follows viewport zoom", BooleanType)
)
