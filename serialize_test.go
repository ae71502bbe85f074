package canopy

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func sampleTree() *Viewport {
	v := NewViewport(640, 480)
	s := NewScene()
	l := NewLayer()
	g := NewGroup()
	g.Attributes().SetX(10)
	g.Attributes().SetRotation(0.5)
	c := NewCircle(20)
	c.Attributes().SetFillColor("#336699")
	c.Attributes().SetShadow(&Shadow{Color: "black", Blur: 2, Offset: Point2D{1, 1}})
	p := NewPolygon(Point2D{0, 0}, Point2D{4, 0}, Point2D{2, 3})
	p.Attributes().SetFillGradient(NewLinearGradient(Point2D{}, Point2D{4, 0}).
		AddColorStop(0, "red").AddColorStop(1, "blue"))
	txt := NewText("hi")
	txt.Attributes().SetName("label")

	v.Add(s)
	s.Add(l)
	l.Add(g, txt)
	g.Add(c, p)
	return v
}

func TestRoundTripJSON(t *testing.T) {
	orig := sampleTree()
	data, err := ToJSON(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("parse back: %v\n%s", err, data)
	}
	ok, err := Equivalent(orig, back)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		again, _ := ToJSON(back)
		t.Errorf("round trip changed the tree:\n%s\nvs\n%s", data, again)
	}
}

func TestRoundTripYAML(t *testing.T) {
	orig := sampleTree()
	data, err := ToYAML(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("parse back: %v\n%s", err, data)
	}
	if diff := cmp.Diff(ToDocument(orig), ToDocument(back)); diff != "" {
		t.Errorf("yaml round trip mismatch (-orig +back):\n%s", diff)
	}
}

func TestToDocumentShape(t *testing.T) {
	l := NewLayer()
	c := NewCircle(5)
	l.Add(c)

	got := ToDocument(l)
	want := Document{
		"type": "Layer",
		"children": []any{
			map[string]any{"type": "Circle", "attributes": map[string]any{"radius": 5.0}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestEquivalentJSON(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"key order", `{"a":1,"b":{"c":2}}`, `{"b":{"c":2},"a":1}`, true},
		{"value differs", `{"a":1}`, `{"a":2}`, false},
		{"extra key", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"nested", `{"children":[{"type":"Circle"}]}`, `{"children":[{"type":"Rectangle"}]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EquivalentJSON([]byte(tt.a), []byte(tt.b))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("EquivalentJSON = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := EquivalentJSON([]byte(`{`), []byte(`{}`)); err == nil {
		t.Error("malformed input should error")
	}
}

func TestCopy(t *testing.T) {
	orig := sampleTree()
	cp, err := Copy(orig)
	if err != nil {
		t.Fatal(err)
	}
	if cp.Parent() != nil {
		t.Error("copy should be detached")
	}
	ok, err := Equivalent(orig, cp)
	if err != nil || !ok {
		t.Fatalf("copy differs: %v", err)
	}

	// The copy is independent of the original.
	cp.(*Viewport).MainScene().Layers()[0].Attributes().SetAlpha(0.2)
	if orig.MainScene().Layers()[0].Attributes().IsDefined(AttrAlpha) {
		t.Error("mutating the copy changed the original")
	}
	if ok, _ := Equivalent(orig, cp); ok {
		t.Error("trees should differ after mutation")
	}
}

func TestCopyKeepsUnvalidatedAttributes(t *testing.T) {
	c := NewCircle(1)
	c.Attributes().Set(NewAttribute("tag", "Tag", "Free tag", StringType), "x")
	cp, err := Copy(c)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := cp.Attributes().Get("tag"); !ok || v != "x" {
		t.Errorf("tag = %v, %v", v, ok)
	}
}

func TestAssignIDs(t *testing.T) {
	v := sampleTree()
	v.Attributes().SetID("root")

	n := AssignIDs(v)
	if n != 6 {
		t.Errorf("assigned %d ids, want 6", n)
	}
	if v.Attributes().ID() != "root" {
		t.Error("existing id overwritten")
	}
	seen := map[string]bool{}
	Walk(v, func(node Node) bool {
		id := node.Attributes().ID()
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
		if node != Node(v) {
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("id %q is not a uuid", id)
			}
		}
		return true
	})
	if AssignIDs(v) != 0 {
		t.Error("second pass should assign nothing")
	}
}

func TestToJSONIsPlainJSON(t *testing.T) {
	data, err := ToJSON(NewRectangle(3, 4))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"type":       "Rectangle",
		"attributes": map[string]any{"width": 3.0, "height": 4.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}
