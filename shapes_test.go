package canopy

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder is a Context2D that logs every call.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Save()                        { r.add("Save") }
func (r *recorder) Restore()                     { r.add("Restore") }
func (r *recorder) Transform(t Transform)        { r.add("Transform %v", t) }
func (r *recorder) SetGlobalAlpha(alpha float64) { r.add("Alpha %g", alpha) }
func (r *recorder) BeginPath()                   { r.add("BeginPath") }
func (r *recorder) ClosePath()                   { r.add("ClosePath") }
func (r *recorder) MoveTo(x, y float64)          { r.add("MoveTo %g,%g", x, y) }
func (r *recorder) LineTo(x, y float64)          { r.add("LineTo %g,%g", x, y) }
func (r *recorder) Arc(x, y, radius, start, end float64, ccw bool) {
	r.add("Arc %g,%g r=%g", x, y, radius)
}
func (r *recorder) Ellipse(x, y, rx, ry, start, end float64, ccw bool) {
	r.add("Ellipse %g,%g %gx%g", x, y, rx, ry)
}
func (r *recorder) Rect(x, y, w, h float64)      { r.add("Rect %g,%g %gx%g", x, y, w, h) }
func (r *recorder) SetFillColor(color string)    { r.add("FillColor %s", color) }
func (r *recorder) SetFillGradient(g Gradient)   { r.add("FillGradient %s", g.GradientType()) }
func (r *recorder) Fill()                        { r.add("Fill") }
func (r *recorder) SetStrokeColor(color string)  { r.add("StrokeColor %s", color) }
func (r *recorder) SetLineWidth(w float64)       { r.add("LineWidth %g", w) }
func (r *recorder) SetLineJoin(join string)      { r.add("LineJoin %s", join) }
func (r *recorder) SetLineCap(lineCap string)    { r.add("LineCap %s", lineCap) }
func (r *recorder) SetLineDash(dashes []float64) { r.add("LineDash %v", dashes) }
func (r *recorder) Stroke()                      { r.add("Stroke") }
func (r *recorder) SetShadow(s *Shadow) {
	if s == nil {
		r.add("Shadow none")
		return
	}
	r.add("Shadow %s", s.Color)
}
func (r *recorder) FillText(text string, x, y float64, font, align, baseline string) {
	r.add("FillText %q %s %s %s", text, font, align, baseline)
}
func (r *recorder) DrawImage(url string, x, y, w, h float64) {
	r.add("DrawImage %s %gx%g", url, w, h)
}

func (r *recorder) has(call string) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func TestShapeDrawPipeline(t *testing.T) {
	r := NewRectangle(10, 20)
	a := r.Attributes()
	a.SetX(5)
	a.SetFillColor("red")
	a.SetStrokeColor("blue")
	a.SetStrokeWidth(2)
	a.SetAlpha(0.5)

	rec := &recorder{}
	r.Draw(rec, 1)

	want := []string{
		"Save",
		"Transform [1, 0, 0, 1, 5, 0]",
		"Alpha 0.5",
		"BeginPath",
		"Rect 0,0 10x20",
		"FillColor red",
		"Fill",
		"StrokeColor blue",
		"LineWidth 2",
		"LineJoin miter",
		"LineCap butt",
		"Stroke",
		"Restore",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeInvisibleDrawsNothing(t *testing.T) {
	c := NewCircle(5)
	c.Attributes().SetVisible(false)
	rec := &recorder{}
	c.Draw(rec, 1)
	if len(rec.calls) != 0 {
		t.Errorf("invisible shape drew: %v", rec.calls)
	}

	c.Attributes().SetVisible(true)
	c.Draw(rec, 0)
	if len(rec.calls) != 0 {
		t.Errorf("zero alpha shape drew: %v", rec.calls)
	}
}

func TestShapeDegenerateSkipsPaint(t *testing.T) {
	c := NewCircle(0)
	c.Attributes().SetFillColor("red")
	rec := &recorder{}
	c.Draw(rec, 1)
	if rec.has("Fill") {
		t.Error("degenerate circle should not fill")
	}
	if !rec.has("Save") || !rec.has("Restore") {
		t.Error("state should still be balanced")
	}
}

func TestShapeGradientFillAndShadow(t *testing.T) {
	c := NewCircle(5)
	c.Attributes().SetFillGradient(NewLinearGradient(Point2D{}, Point2D{5, 0}).AddColorStop(0, "red"))
	c.Attributes().SetStrokeColor("black")
	c.Attributes().SetShadow(&Shadow{Color: "gray", Blur: 3, OnFill: true})

	rec := &recorder{}
	c.Draw(rec, 1)

	want := []string{"Shadow gray", "FillGradient LinearGradient", "Fill", "Shadow none", "StrokeColor black"}
	i := 0
	for _, call := range rec.calls {
		if i < len(want) && call == want[i] {
			i++
		}
	}
	if i != len(want) {
		t.Errorf("expected subsequence %v in %v", want, rec.calls)
	}
}

func TestLineStrokeOnlyUsesDefaultColor(t *testing.T) {
	l := NewLine(0, 0, 10, 10)
	l.Attributes().SetFillColor("red")
	l.Attributes().SetDashArray([]float64{4, 2})

	rec := &recorder{}
	l.Draw(rec, 1)

	if rec.has("Fill") {
		t.Error("line should never fill")
	}
	for _, call := range []string{"MoveTo 0,0", "LineTo 10,10", "StrokeColor black", "LineDash [4 2]", "Stroke"} {
		if !rec.has(call) {
			t.Errorf("missing %q in %v", call, rec.calls)
		}
	}
}

func TestShapeWithoutStrokeColorSkipsStroke(t *testing.T) {
	p := NewPolygon(Point2D{0, 0}, Point2D{10, 0}, Point2D{5, 5})
	p.Attributes().SetFillColor("green")
	rec := &recorder{}
	p.Draw(rec, 1)
	if rec.has("Stroke") {
		t.Error("polygon without stroke color should not stroke")
	}
	if !rec.has("ClosePath") || rec.count("LineTo") != 2 {
		t.Errorf("polygon path wrong: %v", rec.calls)
	}
}

func TestPolyLineNeedsTwoPoints(t *testing.T) {
	p := NewPolyLine(Point2D{1, 1})
	rec := &recorder{}
	p.Draw(rec, 1)
	if rec.has("Stroke") {
		t.Error("single-point polyline should not stroke")
	}
}

func TestRegularPolygonVertices(t *testing.T) {
	p := NewRegularPolygon(4, 10)
	got := p.Vertices()
	want := []Point2D{{0, -10}, {10, 0}, {0, 10}, {-10, 0}}
	if len(got) != len(want) {
		t.Fatalf("vertices = %d, want %d", len(got), len(want))
	}
	for i := range want {
		assertPoint(t, fmt.Sprintf("v%d", i), got[i], want[i])
	}

	if NewRegularPolygon(2, 10).Vertices() != nil {
		t.Error("2 sides should be degenerate")
	}
}

func TestStarVertices(t *testing.T) {
	s := NewStar(5, 5, 10)
	got := s.Vertices()
	if len(got) != 10 {
		t.Fatalf("vertices = %d, want 10", len(got))
	}
	assertPoint(t, "first outer", got[0], Point2D{0, -10})
	for i, p := range got {
		r := math.Hypot(p.X, p.Y)
		want := 10.0
		if i%2 == 1 {
			want = 5
		}
		assertNear(t, fmt.Sprintf("radius %d", i), r, want)
	}
}

func TestRoundedRectangle(t *testing.T) {
	r := NewRectangle(20, 10)
	r.Attributes().SetCornerRadius(50) // clamped to half the short side
	r.Attributes().SetFillColor("white")
	rec := &recorder{}
	r.Draw(rec, 1)
	if rec.count("Arc") != 4 || !rec.has("Arc 15,5 r=5") {
		t.Errorf("rounded corners wrong: %v", rec.calls)
	}
}

func TestEllipseAndArc(t *testing.T) {
	e := NewEllipse(20, 10)
	e.Attributes().SetFillColor("red")
	rec := &recorder{}
	e.Draw(rec, 1)
	if !rec.has("Ellipse 0,0 10x5") {
		t.Errorf("ellipse path wrong: %v", rec.calls)
	}

	a := NewArc(7, 0, math.Pi, false)
	a.Attributes().SetStrokeColor("black")
	rec = &recorder{}
	a.Draw(rec, 1)
	if !rec.has("Arc 0,0 r=7") || !rec.has("Stroke") {
		t.Errorf("arc path wrong: %v", rec.calls)
	}
}

func TestTextDraw(t *testing.T) {
	txt := NewText("hello")
	txt.Attributes().SetFontSize(24)
	txt.Attributes().SetFontFamily("Inter")
	txt.Attributes().SetFontStyle("bold")
	txt.Attributes().SetTextAlign("center")
	rec := &recorder{}
	txt.Draw(rec, 1)

	if txt.Font() != "bold 24px Inter" {
		t.Errorf("Font = %q", txt.Font())
	}
	if !rec.has(`FillText "hello" bold 24px Inter center alphabetic`) {
		t.Errorf("text call wrong: %v", rec.calls)
	}
	if rec.has("Fill") {
		t.Error("text should not fill a path")
	}
}

func TestContainerDrawNestsAlphaAndTransform(t *testing.T) {
	l := NewLayer()
	g := NewGroup()
	g.Attributes().SetX(10)
	g.Attributes().SetAlpha(0.5)
	c := NewCircle(1)
	c.Attributes().SetAlpha(0.5)
	c.Attributes().SetFillColor("red")
	l.Add(g)
	g.Add(c)

	rec := &recorder{}
	Render(rec, l)

	if !rec.has("Transform [1, 0, 0, 1, 10, 0]") {
		t.Errorf("group transform missing: %v", rec.calls)
	}
	if !rec.has("Alpha 0.25") {
		t.Errorf("alpha not multiplied: %v", rec.calls)
	}
	if rec.count("Save") != rec.count("Restore") {
		t.Error("unbalanced Save/Restore")
	}

	g.Attributes().SetVisible(false)
	rec = &recorder{}
	Render(rec, l)
	if rec.has("Fill") {
		t.Error("hidden group should hide children")
	}
}

type fakeLoader struct {
	pending map[string]func(error)
}

func (f *fakeLoader) Load(url string, ready func(error)) {
	f.pending[url] = ready
}

func TestPictureLoadSchedulesRedraw(t *testing.T) {
	loader := &fakeLoader{pending: map[string]func(error){}}
	SetImageLoader(loader)
	defer SetImageLoader(nil)
	sched := &countingScheduler{}
	SetRedrawScheduler(sched)
	defer SetRedrawScheduler(nil)

	p := NewPicture("cat.png")
	l := NewLayer()
	l.Add(p)

	rec := &recorder{}
	p.Draw(rec, 1)
	if p.IsReady() || rec.count("DrawImage") != 0 {
		t.Fatal("picture drew before load")
	}

	loader.pending["cat.png"](nil)
	if !p.IsReady() {
		t.Fatal("picture not ready after load")
	}
	if len(sched.layers) != 1 || sched.layers[0] != l {
		t.Errorf("redraws = %v", sched.layers)
	}
	p.Draw(rec, 1)
	if !rec.has("DrawImage cat.png 0x0") {
		t.Errorf("image not drawn: %v", rec.calls)
	}
}

func TestPictureWithoutLoaderIsReady(t *testing.T) {
	p := NewPicture("dog.png")
	if !p.IsReady() {
		t.Error("picture without loader should be ready")
	}
}
