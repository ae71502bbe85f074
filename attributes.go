package canopy

import (
	"math"
	"sort"
)

// Attributes is a node's open property bag, keyed by attribute property name.
// Values are always in the document value domain (see ValueType).
//
// Typed getters never fail: an absent or mistyped value yields the getter's
// documented default. Strictness lives in validation, not here. Setters given
// nil, an empty string or a non-finite number delete the key, so IsDefined
// always means "has a usable value".
type Attributes struct {
	m map[string]any
}

// NewAttributes returns an empty store.
func NewAttributes() *Attributes {
	return &Attributes{m: make(map[string]any)}
}

// newAttributesFrom installs a normalized deep copy of m.
func newAttributesFrom(m map[string]any) *Attributes {
	a := &Attributes{m: make(map[string]any, len(m))}
	for k, v := range m {
		if nv := normalizeValue(v); nv != nil {
			a.m[k] = nv
		}
	}
	return a
}

// IsDefined reports whether attr has a usable value.
func (a *Attributes) IsDefined(attr *Attribute) bool {
	return a.TypeOf(attr.property) != ValueUndefined
}

// TypeOf classifies the value stored under name. Absent keys and non-finite
// numbers are ValueUndefined.
func (a *Attributes) TypeOf(name string) ValueType {
	return typeOfValue(a.m[name])
}

// Get returns a copy of the raw value stored under name. Values TypeOf
// reports as undefined are absent.
func (a *Attributes) Get(name string) (any, bool) {
	v, ok := a.m[name]
	if !ok || typeOfValue(v) == ValueUndefined {
		return nil, false
	}
	return normalizeValue(v), true
}

// Set stores a raw value for attr. The value is normalized; nil deletes.
func (a *Attributes) Set(attr *Attribute, v any) {
	nv := normalizeValue(v)
	if nv == nil {
		delete(a.m, attr.property)
		return
	}
	a.m[attr.property] = nv
}

// Delete removes attr.
func (a *Attributes) Delete(attr *Attribute) {
	delete(a.m, attr.property)
}

// Keys returns the stored property names in lexical order.
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (a *Attributes) Len() int {
	return len(a.m)
}

// Map returns a deep copy of the store.
func (a *Attributes) Map() map[string]any {
	return normalizeValue(a.m).(map[string]any)
}

// --- raw helpers ---

func (a *Attributes) getString(attr *Attribute, def string) string {
	if s, ok := a.m[attr.property].(string); ok {
		return s
	}
	return def
}

func (a *Attributes) setString(attr *Attribute, s string) {
	if s == "" {
		delete(a.m, attr.property)
		return
	}
	a.m[attr.property] = s
}

func (a *Attributes) getNumber(attr *Attribute, def float64) float64 {
	return numberOr(a.m[attr.property], def)
}

func (a *Attributes) setNumber(attr *Attribute, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		delete(a.m, attr.property)
		return
	}
	a.m[attr.property] = v
}

func (a *Attributes) getBool(attr *Attribute, def bool) bool {
	if b, ok := a.m[attr.property].(bool); ok {
		return b
	}
	return def
}

func (a *Attributes) setBool(attr *Attribute, b bool) {
	a.m[attr.property] = b
}

func (a *Attributes) getPoint(attr *Attribute, def Point2D) Point2D {
	if p, ok := pointFromValue(a.m[attr.property]); ok {
		return p
	}
	return def
}

func (a *Attributes) setPoint(attr *Attribute, p Point2D) {
	if !p.finite() {
		delete(a.m, attr.property)
		return
	}
	a.m[attr.property] = p.toObject()
}

// --- node attributes ---

// ID returns the node ID, or "".
func (a *Attributes) ID() string { return a.getString(AttrID, "") }

// SetID sets the node ID; "" deletes it.
func (a *Attributes) SetID(id string) { a.setString(AttrID, id) }

// Name returns the node name, or "".
func (a *Attributes) Name() string { return a.getString(AttrName, "") }

// SetName sets the node name; "" deletes it.
func (a *Attributes) SetName(name string) { a.setString(AttrName, name) }

// Visible reports whether the node is drawn. Default true.
func (a *Attributes) Visible() bool { return a.getBool(AttrVisible, true) }

// SetVisible sets visibility.
func (a *Attributes) SetVisible(v bool) { a.setBool(AttrVisible, v) }

// Listening reports whether the node receives events. Default true.
func (a *Attributes) Listening() bool { return a.getBool(AttrListening, true) }

// SetListening sets whether the node receives events.
func (a *Attributes) SetListening(v bool) { a.setBool(AttrListening, v) }

// Transform returns the explicit override transform, if one is set.
func (a *Attributes) Transform() (Transform, bool) {
	arr, ok := a.m[AttrTransform.property].([]any)
	if !ok || len(arr) != 6 {
		return Transform{}, false
	}
	var t Transform
	for i, e := range arr {
		if typeOfValue(e) != ValueNumber {
			return Transform{}, false
		}
		t[i] = e.(float64)
	}
	return t, true
}

// SetTransform sets the override transform; nil deletes it.
func (a *Attributes) SetTransform(t *Transform) {
	if t == nil {
		delete(a.m, AttrTransform.property)
		return
	}
	a.m[AttrTransform.property] = normalizeValue(t[:])
}

// --- positioning ---

// X returns the x coordinate. Default 0.
func (a *Attributes) X() float64 { return a.getNumber(AttrX, 0) }

// SetX sets the x coordinate.
func (a *Attributes) SetX(x float64) { a.setNumber(AttrX, x) }

// Y returns the y coordinate. Default 0.
func (a *Attributes) Y() float64 { return a.getNumber(AttrY, 0) }

// SetY sets the y coordinate.
func (a *Attributes) SetY(y float64) { a.setNumber(AttrY, y) }

// Alpha returns the opacity clamped to [0, 1]. Default 1.
func (a *Attributes) Alpha() float64 { return clamp01(a.getNumber(AttrAlpha, 1)) }

// SetAlpha sets the opacity, clamped to [0, 1].
func (a *Attributes) SetAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		delete(a.m, AttrAlpha.property)
		return
	}
	a.m[AttrAlpha.property] = clamp01(alpha)
}

// Rotation returns the rotation in radians. Default 0.
func (a *Attributes) Rotation() float64 { return a.getNumber(AttrRotation, 0) }

// SetRotation sets the rotation in radians.
func (a *Attributes) SetRotation(radians float64) { a.setNumber(AttrRotation, radians) }

// RotationDegrees returns the rotation in degrees.
func (a *Attributes) RotationDegrees() float64 { return a.Rotation() * 180 / math.Pi }

// SetRotationDegrees sets the rotation in degrees.
func (a *Attributes) SetRotationDegrees(deg float64) { a.SetRotation(deg * math.Pi / 180) }

// Scale returns the scale factors. Default (1, 1).
func (a *Attributes) Scale() Point2D { return a.getPoint(AttrScale, Point2D{1, 1}) }

// SetScale sets the scale factors.
func (a *Attributes) SetScale(sx, sy float64) { a.setPoint(AttrScale, Point2D{sx, sy}) }

// Shear returns the shear factors. Default (0, 0).
func (a *Attributes) Shear() Point2D { return a.getPoint(AttrShear, Point2D{}) }

// SetShear sets the shear factors.
func (a *Attributes) SetShear(shx, shy float64) { a.setPoint(AttrShear, Point2D{shx, shy}) }

// Offset returns the offset. Default (0, 0).
func (a *Attributes) Offset() Point2D { return a.getPoint(AttrOffset, Point2D{}) }

// SetOffset sets the offset.
func (a *Attributes) SetOffset(x, y float64) { a.setPoint(AttrOffset, Point2D{x, y}) }

// --- paint ---

// FillColor returns the fill when it is a color string, or "".
func (a *Attributes) FillColor() string { return a.getString(AttrFill, "") }

// SetFillColor sets a solid fill; "" deletes the fill.
func (a *Attributes) SetFillColor(color string) { a.setString(AttrFill, color) }

// FillGradient returns the fill when it is a gradient object, or nil.
func (a *Attributes) FillGradient() Gradient { return gradientFromValue(a.m[AttrFill.property]) }

// SetFillGradient sets a gradient fill; nil deletes the fill.
func (a *Attributes) SetFillGradient(g Gradient) {
	if g == nil {
		delete(a.m, AttrFill.property)
		return
	}
	a.m[AttrFill.property] = normalizeValue(g.toObject())
}

// StrokeColor returns the stroke color, or "" when unset.
func (a *Attributes) StrokeColor() string { return a.getString(AttrStrokeColor, "") }

// SetStrokeColor sets the stroke color; "" deletes it.
func (a *Attributes) SetStrokeColor(color string) { a.setString(AttrStrokeColor, color) }

// StrokeWidth returns the stroke width. Default CurrentDefaults().StrokeWidth.
func (a *Attributes) StrokeWidth() float64 { return a.getNumber(AttrStrokeWidth, current.StrokeWidth) }

// SetStrokeWidth sets the stroke width.
func (a *Attributes) SetStrokeWidth(w float64) { a.setNumber(AttrStrokeWidth, w) }

// LineJoin returns the stroke join style. Default "miter".
func (a *Attributes) LineJoin() string { return a.getString(AttrLineJoin, "miter") }

// SetLineJoin sets the stroke join style; "" deletes it.
func (a *Attributes) SetLineJoin(join string) { a.setString(AttrLineJoin, join) }

// LineCap returns the stroke cap style. Default "butt".
func (a *Attributes) LineCap() string { return a.getString(AttrLineCap, "butt") }

// SetLineCap sets the stroke cap style; "" deletes it.
func (a *Attributes) SetLineCap(lineCap string) { a.setString(AttrLineCap, lineCap) }

// DashArray returns the dash pattern, or nil.
func (a *Attributes) DashArray() []float64 {
	arr, ok := a.m[AttrDashArray.property].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(arr))
	for _, e := range arr {
		if typeOfValue(e) == ValueNumber {
			out = append(out, e.(float64))
		}
	}
	return out
}

// SetDashArray sets the dash pattern; an empty pattern deletes it.
func (a *Attributes) SetDashArray(dashes []float64) {
	if len(dashes) == 0 {
		delete(a.m, AttrDashArray.property)
		return
	}
	a.m[AttrDashArray.property] = normalizeValue(dashes)
}

// Shadow returns the drop shadow, or nil.
func (a *Attributes) Shadow() *Shadow { return shadowFromValue(a.m[AttrShadow.property]) }

// SetShadow sets the drop shadow; nil deletes it.
func (a *Attributes) SetShadow(s *Shadow) {
	if s == nil {
		delete(a.m, AttrShadow.property)
		return
	}
	a.m[AttrShadow.property] = normalizeValue(s.toObject())
}

// --- dragging ---

// Draggable reports whether the node can be dragged. Default false.
func (a *Attributes) Draggable() bool { return a.getBool(AttrDraggable, false) }

// SetDraggable sets whether the node can be dragged.
func (a *Attributes) SetDraggable(v bool) { a.setBool(AttrDraggable, v) }

// DragConstraint returns the drag axis constraint. Default "none".
func (a *Attributes) DragConstraint() string { return a.getString(AttrDragConstraint, "none") }

// SetDragConstraint sets the drag axis constraint; "" deletes it.
func (a *Attributes) SetDragConstraint(c string) { a.setString(AttrDragConstraint, c) }

// DragBounds returns the drag area, or nil.
func (a *Attributes) DragBounds() *DragBounds {
	return dragBoundsFromValue(a.m[AttrDragBounds.property])
}

// SetDragBounds sets the drag area; nil deletes it.
func (a *Attributes) SetDragBounds(b *DragBounds) {
	if b == nil {
		delete(a.m, AttrDragBounds.property)
		return
	}
	a.m[AttrDragBounds.property] = normalizeValue(b.toObject())
}

// --- geometry ---

// Width returns the width. Default 0.
func (a *Attributes) Width() float64 { return a.getNumber(AttrWidth, 0) }

// SetWidth sets the width.
func (a *Attributes) SetWidth(w float64) { a.setNumber(AttrWidth, w) }

// Height returns the height. Default 0.
func (a *Attributes) Height() float64 { return a.getNumber(AttrHeight, 0) }

// SetHeight sets the height.
func (a *Attributes) SetHeight(h float64) { a.setNumber(AttrHeight, h) }

// Radius returns the radius. Default 0.
func (a *Attributes) Radius() float64 { return a.getNumber(AttrRadius, 0) }

// SetRadius sets the radius.
func (a *Attributes) SetRadius(r float64) { a.setNumber(AttrRadius, r) }

// CornerRadius returns the rectangle corner radius. Default 0.
func (a *Attributes) CornerRadius() float64 { return a.getNumber(AttrCornerRadius, 0) }

// SetCornerRadius sets the rectangle corner radius.
func (a *Attributes) SetCornerRadius(r float64) { a.setNumber(AttrCornerRadius, r) }

// Points returns the shape vertices, or nil. Malformed entries are skipped.
func (a *Attributes) Points() []Point2D {
	arr, ok := a.m[AttrPoints.property].([]any)
	if !ok {
		return nil
	}
	out := make([]Point2D, 0, len(arr))
	for _, e := range arr {
		if p, ok := pointFromValue(e); ok {
			out = append(out, p)
		}
	}
	return out
}

// SetPoints sets the shape vertices; nil deletes them.
func (a *Attributes) SetPoints(points []Point2D) {
	if points == nil {
		delete(a.m, AttrPoints.property)
		return
	}
	arr := make([]any, len(points))
	for i, p := range points {
		arr[i] = p.toObject()
	}
	a.m[AttrPoints.property] = arr
}

// Sides returns the regular polygon side count. Default 0.
func (a *Attributes) Sides() int { return int(a.getNumber(AttrSides, 0)) }

// SetSides sets the regular polygon side count.
func (a *Attributes) SetSides(n int) { a.setNumber(AttrSides, float64(n)) }

// StarPoints returns the number of star tips. Default 0.
func (a *Attributes) StarPoints() int { return int(a.getNumber(AttrStarPoints, 0)) }

// SetStarPoints sets the number of star tips.
func (a *Attributes) SetStarPoints(n int) { a.setNumber(AttrStarPoints, float64(n)) }

// InnerRadius returns the star inner radius. Default 0.
func (a *Attributes) InnerRadius() float64 { return a.getNumber(AttrInnerRadius, 0) }

// SetInnerRadius sets the star inner radius.
func (a *Attributes) SetInnerRadius(r float64) { a.setNumber(AttrInnerRadius, r) }

// OuterRadius returns the star outer radius. Default 0.
func (a *Attributes) OuterRadius() float64 { return a.getNumber(AttrOuterRadius, 0) }

// SetOuterRadius sets the star outer radius.
func (a *Attributes) SetOuterRadius(r float64) { a.setNumber(AttrOuterRadius, r) }

// StartAngle returns the arc start angle in radians. Default 0.
func (a *Attributes) StartAngle() float64 { return a.getNumber(AttrStartAngle, 0) }

// SetStartAngle sets the arc start angle in radians.
func (a *Attributes) SetStartAngle(r float64) { a.setNumber(AttrStartAngle, r) }

// EndAngle returns the arc end angle in radians. Default 0.
func (a *Attributes) EndAngle() float64 { return a.getNumber(AttrEndAngle, 0) }

// SetEndAngle sets the arc end angle in radians.
func (a *Attributes) SetEndAngle(r float64) { a.setNumber(AttrEndAngle, r) }

// CounterClockwise reports the arc direction. Default false.
func (a *Attributes) CounterClockwise() bool { return a.getBool(AttrCounterClockwise, false) }

// SetCounterClockwise sets the arc direction.
func (a *Attributes) SetCounterClockwise(v bool) { a.setBool(AttrCounterClockwise, v) }

// --- text ---

// Text returns the text content, or "".
func (a *Attributes) Text() string { return a.getString(AttrText, "") }

// SetText sets the text content; "" deletes it.
func (a *Attributes) SetText(s string) { a.setString(AttrText, s) }

// FontSize returns the font size. Default CurrentDefaults().FontSize.
func (a *Attributes) FontSize() float64 { return a.getNumber(AttrFontSize, current.FontSize) }

// SetFontSize sets the font size.
func (a *Attributes) SetFontSize(size float64) { a.setNumber(AttrFontSize, size) }

// FontFamily returns the font family. Default CurrentDefaults().FontFamily.
func (a *Attributes) FontFamily() string { return a.getString(AttrFontFamily, current.FontFamily) }

// SetFontFamily sets the font family; "" deletes it.
func (a *Attributes) SetFontFamily(family string) { a.setString(AttrFontFamily, family) }

// FontStyle returns the font style. Default CurrentDefaults().FontStyle.
func (a *Attributes) FontStyle() string { return a.getString(AttrFontStyle, current.FontStyle) }

// SetFontStyle sets the font style; "" deletes it.
func (a *Attributes) SetFontStyle(style string) { a.setString(AttrFontStyle, style) }

// TextAlign returns the horizontal alignment. Default "start".
func (a *Attributes) TextAlign() string { return a.getString(AttrTextAlign, "start") }

// SetTextAlign sets the horizontal alignment; "" deletes it.
func (a *Attributes) SetTextAlign(align string) { a.setString(AttrTextAlign, align) }

// TextBaseline returns the vertical alignment. Default "alphabetic".
func (a *Attributes) TextBaseline() string { return a.getString(AttrTextBaseline, "alphabetic") }

// SetTextBaseline sets the vertical alignment; "" deletes it.
func (a *Attributes) SetTextBaseline(baseline string) { a.setString(AttrTextBaseline, baseline) }

// --- resources and layers ---

// URL returns the image location, or "".
func (a *Attributes) URL() string { return a.getString(AttrURL, "") }

// SetURL sets the image location; "" deletes it.
func (a *Attributes) SetURL(url string) { a.setString(AttrURL, url) }

// ClearLayerBeforeDraw reports whether a layer clears before drawing.
// Default true.
func (a *Attributes) ClearLayerBeforeDraw() bool { return a.getBool(AttrClearLayerBeforeDraw, true) }

// SetClearLayerBeforeDraw sets whether a layer clears before drawing.
func (a *Attributes) SetClearLayerBeforeDraw(v bool) { a.setBool(AttrClearLayerBeforeDraw, v) }

// Zoomable reports whether a layer follows viewport zoom. Default true.
func (a *Attributes) Zoomable() bool { return a.getBool(AttrZoomable, true) }

// SetZoomable sets whether a layer follows viewport zoom.
func (a *Attributes) SetZoomable(v bool) { a.setBool(AttrZoomable, v) }
