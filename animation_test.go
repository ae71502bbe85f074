package canopy

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

type countingScheduler struct {
	layers []*Layer
}

func (s *countingScheduler) ScheduleRedraw(l *Layer) { s.layers = append(s.layers, l) }

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewRectangle(10, 10)
	node.Attributes().SetX(10)
	node.Attributes().SetY(20)

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	a := node.Attributes()
	if math.Abs(a.X()-100) > 0.5 {
		t.Errorf("X = %f, want ~100", a.X())
	}
	if math.Abs(a.Y()-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", a.Y())
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewGroup()

	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	s := node.Attributes().Scale()
	if math.Abs(s.X-2.0) > 0.01 {
		t.Errorf("ScaleX = %f, want ~2.0", s.X)
	}
	if math.Abs(s.Y-3.0) > 0.01 {
		t.Errorf("ScaleY = %f, want ~3.0", s.Y)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewCircle(5)

	g := TweenAlpha(node, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be Done at half duration")
	}
	if got := node.Attributes().Alpha(); math.Abs(got-0.5) > 0.05 {
		t.Errorf("Alpha at half = %f, want ~0.5", got)
	}
}

func TestTweenRotation(t *testing.T) {
	node := NewStar(5, 10, 20)

	g := TweenRotation(node, math.Pi, 1.0, ease.Linear)
	g.Update(1.0)

	if !g.Done {
		t.Fatal("expected Done")
	}
	if got := node.Attributes().Rotation(); math.Abs(got-math.Pi) > 0.01 {
		t.Errorf("Rotation = %f, want ~pi", got)
	}
}

func TestTweenAttributeFromUndefined(t *testing.T) {
	node := NewRectangle(10, 10)

	g := TweenAttribute(node, AttrCornerRadius, 4, 1.0, ease.Linear)
	g.Update(0.5)

	if got := node.Attributes().CornerRadius(); math.Abs(got-2) > 0.05 {
		t.Errorf("CornerRadius at half = %f, want ~2", got)
	}
}

func TestTweenSchedulesLayerRedraw(t *testing.T) {
	sched := &countingScheduler{}
	SetRedrawScheduler(sched)
	defer SetRedrawScheduler(nil)

	layer := NewLayer()
	node := NewCircle(5)
	layer.Add(node)

	g := TweenPosition(node, 10, 10, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if len(sched.layers) != 2 {
		t.Fatalf("redraws = %d, want 2", len(sched.layers))
	}
	if sched.layers[0] != layer {
		t.Error("redraw scheduled for wrong layer")
	}

	// Done groups do not write or redraw.
	g.Update(0.5)
	if len(sched.layers) != 2 {
		t.Errorf("redraws after Done = %d, want 2", len(sched.layers))
	}
}
