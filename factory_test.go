package canopy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sheetSnapshot(f Factory) []string {
	var out []string
	for _, e := range f.AttributeSheet() {
		s := e.Attribute.Property()
		if e.Required {
			s += "*"
		}
		out = append(out, s)
	}
	return out
}

func TestAbstractFactoryRedeclare(t *testing.T) {
	f := NewAbstractFactory("Thing", func(a *Attributes) Node { return newGroup(a) }).
		AddAttribute(AttrX, false).
		AddAttribute(AttrWidth, true).
		AddAttribute(AttrY, false)

	f.AddAttribute(AttrX, true)
	f.AddAttribute(AttrWidth, false)

	want := []string{"x*", "width", "y"}
	if diff := cmp.Diff(want, sheetSnapshot(f)); diff != "" {
		t.Errorf("sheet mismatch (-want +got):\n%s", diff)
	}
	req := f.RequiredAttributes()
	if len(req) != 1 || !req[0].Equal(AttrX) {
		t.Errorf("required = %v", req)
	}
	if !f.IsRequired(AttrX) || f.IsRequired(AttrY) {
		t.Error("IsRequired wrong")
	}
}

func TestAbstractFactorySheetIsSnapshot(t *testing.T) {
	f := NewNodeFactory("Thing", func(a *Attributes) Node { return newGroup(a) })
	sheet := f.AttributeSheet()
	sheet[0].Required = true
	if f.IsRequired(AttrID) {
		t.Error("mutating the sheet changed the factory")
	}
}

func TestAbstractFactoryNilAttributePanics(t *testing.T) {
	expectPanic(t, "nil attribute", func() {
		NewAbstractFactory("Thing", nil).AddAttribute(nil, false)
	})
}

func TestBuiltinSheets(t *testing.T) {
	r := NewFactoryRegistry()
	RegisterBuiltins(r)

	tests := []struct {
		typ      string
		required []string
	}{
		{"Viewport", []string{"width", "height"}},
		{"Scene", nil},
		{"Circle", []string{"radius"}},
		{"Rectangle", []string{"width", "height"}},
		{"Star", []string{"starPoints", "innerRadius", "outerRadius"}},
		{"Arc", []string{"radius", "startAngle", "endAngle"}},
		{"Text", []string{"text"}},
		{"Picture", []string{"url"}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			f, ok := r.Lookup(tt.typ)
			if !ok {
				t.Fatalf("no factory for %s", tt.typ)
			}
			var got []string
			for _, a := range f.RequiredAttributes() {
				got = append(got, a.Property())
			}
			if diff := cmp.Diff(tt.required, got); diff != "" {
				t.Errorf("required mismatch (-want +got):\n%s", diff)
			}
		})
	}

	circle, _ := r.Lookup("Circle")
	for _, prop := range []string{"id", "visible", "transform", "x", "fill", "shadow", "offset"} {
		if _, ok := circle.Attribute(prop); !ok {
			t.Errorf("Circle missing common attribute %q", prop)
		}
	}
	if _, ok := circle.Attribute("width"); ok {
		t.Error("Circle should not declare width")
	}

	layer, _ := r.Lookup("Layer")
	if _, ok := layer.(ContainerFactory); !ok {
		t.Error("Layer factory should be a ContainerFactory")
	}
}

func TestRegistryTypeNames(t *testing.T) {
	want := []string{
		"Arc", "Circle", "Ellipse", "Group", "Layer", "Line", "Picture",
		"PolyLine", "Polygon", "Rectangle", "RegularPolygon", "Scene", "Star",
		"Text", "Viewport",
	}
	r := NewFactoryRegistry()
	RegisterBuiltins(r)
	if diff := cmp.Diff(want, r.TypeNames()); diff != "" {
		t.Errorf("type names mismatch (-want +got):\n%s", diff)
	}
	expectPanic(t, "nil factory", func() { r.Register(nil) })
}

// heart is a custom shape defined outside the built-in set.
type heart struct {
	ShapeBase
}

var shapeTypeHeart = RegisterShapeType("Heart")

func (h *heart) Prepare(ctx Context2D, _ float64) bool {
	s := h.Attributes().Radius()
	if s <= 0 {
		return false
	}
	ctx.MoveTo(0, s)
	ctx.LineTo(-s, 0)
	ctx.Arc(-s/2, 0, s/2, 0, 0, false)
	ctx.Arc(s/2, 0, s/2, 0, 0, false)
	ctx.ClosePath()
	return true
}

func newHeart(a *Attributes) Node {
	h := &heart{}
	h.Init(h, shapeTypeHeart, a)
	return h
}

func TestCustomShapeFactory(t *testing.T) {
	r := NewFactoryRegistry()
	RegisterBuiltins(r)
	r.Register(NewShapeFactory(shapeTypeHeart, newHeart).AddAttribute(AttrRadius, true))

	doc := map[string]any{
		"type": "Layer",
		"children": []any{
			map[string]any{"type": "Heart", "attributes": map[string]any{"radius": 4, "fill": "pink"}},
		},
	}
	n, err := NewDeserializer(r).Deserialize(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := n.(*Layer).ChildAt(0).(*heart)
	if !ok {
		t.Fatalf("child = %T, want *heart", n.(*Layer).ChildAt(0))
	}
	if h.TypeName() != "Heart" || h.NodeType() != NodeTypeShape {
		t.Errorf("TypeName = %q", h.TypeName())
	}

	rec := &recorder{}
	Render(rec, n)
	if !rec.has("FillColor pink") || rec.count("Arc") != 2 {
		t.Errorf("custom shape draw wrong: %v", rec.calls)
	}

	// The default registry does not know the type.
	if _, err := Deserialize(doc["children"].([]any)[0], nil); err == nil {
		t.Error("default registry should reject Heart")
	}
}
