package canopy

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeserializeRequiredAttribute(t *testing.T) {
	doc := map[string]any{"type": "Circle", "attributes": map[string]any{}}
	ctx := NewValidationContext()
	n, err := Deserialize(doc, ctx)
	if n != nil {
		t.Error("fail-fast should return nil node")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	want := Violations{{Kind: ErrRequiredAttributeMissing, Message: "required value is missing", Path: ".attributes.radius"}}
	if diff := cmp.Diff(want, ctx.Errors()); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}

	doc["attributes"] = map[string]any{"radius": 5}
	n, err = Deserialize(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := n.(*Circle)
	if !ok {
		t.Fatalf("node = %T, want *Circle", n)
	}
	assertNear(t, "radius", c.Attributes().Radius(), 5)
}

func TestDeserializeNullCountsAsMissing(t *testing.T) {
	ctx := NewValidationContext().SetStopOnError(false)
	_, _ = Deserialize(map[string]any{"type": "Circle", "attributes": map[string]any{"radius": nil}}, ctx)
	if len(ctx.Errors()) != 1 || ctx.Errors()[0].Kind != ErrRequiredAttributeMissing {
		t.Errorf("errors = %v", ctx.Errors())
	}
}

func TestDeserializeTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		kind ErrorKind
		path string
	}{
		{"missing type", map[string]any{}, ErrRequiredAttributeMissing, ".type"},
		{"non-string type", map[string]any{"type": 3}, ErrTypeMismatch, ".type"},
		{"unknown type", map[string]any{"type": "Blob"}, ErrUnregisteredTypeTag, ".type"},
		{"not an object", []any{1, 2}, ErrTypeMismatch, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewValidationContext()
			n, err := Deserialize(tt.doc, ctx)
			if n != nil || err == nil {
				t.Fatalf("got (%v, %v), want (nil, error)", n, err)
			}
			vs := ctx.Errors()
			if len(vs) != 1 || vs[0].Kind != tt.kind || vs[0].Path != tt.path {
				t.Errorf("violations = %v", vs)
			}
		})
	}
}

func TestDeserializeUnknownAttribute(t *testing.T) {
	doc := map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 5, "width": 10}}

	ctx := NewValidationContext()
	if _, err := Deserialize(doc, ctx); err == nil {
		t.Fatal("expected error")
	}
	if vs := ctx.Errors(); vs[0].Kind != ErrUnknownAttributeForType || vs[0].Path != ".attributes.width" {
		t.Errorf("violations = %v", vs)
	}

	// Collect-all keeps the node and drops the offending key.
	ctx = NewValidationContext().SetStopOnError(false)
	n, err := Deserialize(doc, ctx)
	if err != nil || n == nil {
		t.Fatalf("collect-all: (%v, %v)", n, err)
	}
	if n.Attributes().IsDefined(AttrWidth) {
		t.Error("unknown attribute should be dropped")
	}
	if len(ctx.Errors()) != 1 {
		t.Errorf("errors = %v", ctx.Errors())
	}
}

func TestDeserializeCollectAllSkipsBadAttributes(t *testing.T) {
	doc := map[string]any{
		"type": "Rectangle",
		"attributes": map[string]any{
			"width":    "wide",
			"height":   10,
			"fill":     42,
			"lineJoin": "round",
		},
	}
	ctx := NewValidationContext().SetStopOnError(false)
	n, err := Deserialize(doc, ctx)
	if err != nil {
		t.Fatal(err)
	}
	a := n.Attributes()
	if a.IsDefined(AttrWidth) || a.IsDefined(AttrFill) {
		t.Error("invalid attributes should be skipped")
	}
	if a.Height() != 10 || a.LineJoin() != "round" {
		t.Error("valid attributes should be kept")
	}

	got := make([]string, len(ctx.Errors()))
	for i, v := range ctx.Errors() {
		got[i] = v.Path
	}
	// Keys are validated in lexical order.
	if diff := cmp.Diff([]string{".attributes.fill", ".attributes.width"}, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeContainerFiltering(t *testing.T) {
	doc := map[string]any{
		"type": "Layer",
		"children": []any{
			map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 1}},
			map[string]any{"type": "Scene"},
			map[string]any{"type": "Rectangle", "attributes": map[string]any{"width": 1, "height": 2}},
		},
	}
	ctx := NewValidationContext()
	n, err := Deserialize(doc, ctx)
	if err != nil {
		t.Fatal(err)
	}
	l := n.(*Layer)
	if l.NumChildren() != 2 {
		t.Fatalf("children = %d, want 2", l.NumChildren())
	}
	if l.ChildAt(0).TypeName() != "Circle" || l.ChildAt(1).TypeName() != "Rectangle" {
		t.Error("siblings out of order")
	}
	if len(ctx.Errors()) != 0 {
		t.Errorf("dropping a disallowed child should not record errors: %v", ctx.Errors())
	}
	if l.ChildAt(0).Parent() != Container(l) {
		t.Error("child parent not set")
	}
}

func TestDeserializeChildErrors(t *testing.T) {
	doc := map[string]any{
		"type": "Group",
		"children": []any{
			map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 1}},
			map[string]any{"type": "Circle", "attributes": map[string]any{}},
			map[string]any{"type": "Blob"},
			map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 3}},
		},
	}

	ctx := NewValidationContext()
	if n, err := Deserialize(doc, ctx); n != nil || err == nil {
		t.Fatalf("fail-fast: (%v, %v)", n, err)
	}
	if vs := ctx.Errors(); len(vs) != 1 || vs[0].Path != ".children[1].attributes.radius" {
		t.Errorf("fail-fast violations = %v", vs)
	}

	ctx = NewValidationContext().SetStopOnError(false)
	n, err := Deserialize(doc, ctx)
	if err != nil {
		t.Fatal(err)
	}
	g := n.(*Group)
	if g.NumChildren() != 3 {
		t.Errorf("children = %d, want 3 (invalid child built, unknown type skipped)", g.NumChildren())
	}
	paths := []string{}
	for _, v := range ctx.Errors() {
		paths = append(paths, v.Path)
	}
	if diff := cmp.Diff([]string{".children[1].attributes.radius", ".children[2].type"}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeChildrenNotArray(t *testing.T) {
	ctx := NewValidationContext()
	_, err := Deserialize(map[string]any{"type": "Group", "children": "nope"}, ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if vs := ctx.Errors(); vs[0].Kind != ErrTypeMismatch || vs[0].Path != ".children" {
		t.Errorf("violations = %v", vs)
	}
}

func TestDeserializeNoValidate(t *testing.T) {
	doc := map[string]any{"type": "Circle", "attributes": map[string]any{"bogus": true}}
	ctx := NewValidationContext().SetValidate(false)
	n, err := Deserialize(doc, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := n.Attributes().Get("bogus"); !ok || v != true {
		t.Error("unvalidated attributes should be installed as-is")
	}
}

func TestParseYAMLAndJSON(t *testing.T) {
	yamlDoc := []byte(`
type: Viewport
attributes:
  width: 800
  height: 600
children:
  - type: Scene
    children:
      - type: Layer
        children:
          - type: Circle
            attributes:
              radius: 20
              x: 100
              y: 100
              fill: "#ff0000"
          - type: Polygon
            attributes:
              points:
                - {x: 0, y: 0}
                - {x: 10, y: 0}
                - {x: 5, y: 8}
`)
	n, err := Parse(yamlDoc, nil)
	if err != nil {
		t.Fatal(err)
	}
	v := n.(*Viewport)
	assertNear(t, "width", v.Width(), 800)
	l := v.MainScene().Layers()[0]
	if l.NumChildren() != 2 {
		t.Fatalf("layer children = %d", l.NumChildren())
	}
	if c := l.ChildAt(0); c.Attributes().FillColor() != "#ff0000" || c.Layer() != l {
		t.Error("circle not wired")
	}
	if pts := l.ChildAt(1).Attributes().Points(); len(pts) != 3 || pts[2] != (Point2D{5, 8}) {
		t.Errorf("points = %v", pts)
	}

	jsonDoc := []byte(`{"type":"Circle","attributes":{"radius":5}}`)
	if _, err := Parse(jsonDoc, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := Parse([]byte(`- 1`), nil); !errors.Is(err, ErrNotObject) {
		t.Errorf("err = %v, want ErrNotObject", err)
	}
}

type recordingPostProcessor struct {
	*AbstractFactory
	calls    int
	children int
}

func (f *recordingPostProcessor) PostProcess(n Node, _ *ValidationContext) error {
	f.calls++
	f.children = n.(Container).NumChildren()
	return nil
}

func TestPostProcessRunsAfterChildren(t *testing.T) {
	r := NewFactoryRegistry()
	RegisterBuiltins(r)
	pp := &recordingPostProcessor{
		AbstractFactory: NewContainerFactory("Group", func(a *Attributes) Container { return newGroup(a) }).AbstractFactory,
	}
	r.Register(pp)

	doc := map[string]any{
		"type": "Group",
		"children": []any{
			map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 1}},
		},
	}
	if _, err := NewDeserializer(r).Deserialize(doc, nil); err != nil {
		t.Fatal(err)
	}
	if pp.calls != 1 || pp.children != 1 {
		t.Errorf("calls = %d, children at post-process = %d", pp.calls, pp.children)
	}

	// Failed construction skips the hook.
	pp.calls = 0
	bad := map[string]any{"type": "Group", "attributes": map[string]any{"x": "left"}}
	if _, err := NewDeserializer(r).Deserialize(bad, nil); err == nil {
		t.Fatal("expected error")
	}
	if pp.calls != 0 {
		t.Error("post-process ran for failed construction")
	}
}

func TestDeserializePictureStartsLoad(t *testing.T) {
	loader := &fakeLoader{pending: map[string]func(error){}}
	SetImageLoader(loader)
	defer SetImageLoader(nil)

	doc := map[string]any{"type": "Picture", "attributes": map[string]any{"url": "a.png"}}
	n, err := Deserialize(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loader.pending["a.png"]; !ok {
		t.Fatal("post-process did not start loading")
	}
	loader.pending["a.png"](nil)
	if !n.(*Picture).IsReady() {
		t.Error("picture not ready")
	}
}

func TestDeserializeDroppedChildSkipsPostProcess(t *testing.T) {
	loader := &fakeLoader{pending: map[string]func(error){}}
	SetImageLoader(loader)
	defer SetImageLoader(nil)

	doc := map[string]any{
		"type": "Scene",
		"children": []any{
			map[string]any{"type": "Picture", "attributes": map[string]any{"url": "dropped.png"}},
			map[string]any{
				"type": "Layer",
				"children": []any{
					map[string]any{"type": "Picture", "attributes": map[string]any{"url": "kept.png"}},
				},
			},
		},
	}
	n, err := Deserialize(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.(*Scene).NumChildren(); got != 1 {
		t.Fatalf("scene children = %d, want 1", got)
	}
	if _, ok := loader.pending["dropped.png"]; ok {
		t.Error("dropped picture started loading")
	}
	if _, ok := loader.pending["kept.png"]; !ok {
		t.Error("attached picture did not start loading")
	}
}

func TestExampleSceneDocument(t *testing.T) {
	data, err := os.ReadFile("examples/shapes/scene.yaml")
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewValidationContext().SetStopOnError(false)
	root, err := Parse(data, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Errors()) > 0 {
		t.Fatalf("example scene has errors: %v", ctx.Errors())
	}
	count := 0
	Walk(root, func(Node) bool {
		count++
		return true
	})
	if count != 12 {
		t.Errorf("node count = %d, want 12", count)
	}
}
