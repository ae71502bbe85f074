package ebitenrender

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

func testViewport() *canopy.Viewport {
	v := canopy.NewViewport(32, 24)
	s := canopy.NewScene()
	l := canopy.NewLayer()
	c := canopy.NewCircle(5)
	c.Attributes().SetFillColor("red")
	l.Add(c)
	s.Add(l)
	v.Add(s)
	return v
}

func TestGameLayout(t *testing.T) {
	g := NewGame(testViewport(), nil)
	if w, h := g.Layout(800, 600); w != 32 || h != 24 {
		t.Errorf("Layout = %dx%d, want 32x24", w, h)
	}
	g = NewGame(canopy.NewViewport(0, 0), nil)
	if w, h := g.Layout(800, 600); w != 1 || h != 1 {
		t.Errorf("empty viewport Layout = %dx%d, want 1x1", w, h)
	}
}

func TestGameClearColor(t *testing.T) {
	g := NewGame(testViewport(), nil)
	if err := g.SetClearColor("bogus"); !errors.Is(err, canopy.ErrInvalidColor) {
		t.Errorf("SetClearColor(bogus) = %v", err)
	}
	if err := g.SetClearColor("#102030"); err != nil {
		t.Fatal(err)
	}
	if g.clear.A != 1 {
		t.Errorf("clear = %+v", g.clear)
	}
}

func TestGameDrawOnlyWhenDirty(t *testing.T) {
	g := NewGame(testViewport(), nil)
	screen := ebiten.NewImage(32, 24)

	g.Draw(screen)
	if g.Redraws() != 1 || g.Dirty() {
		t.Fatalf("after first Draw: redraws = %d, dirty = %v", g.Redraws(), g.Dirty())
	}
	if g.Canvas().Stats().Fills != 1 {
		t.Errorf("stats = %+v", g.Canvas().Stats())
	}

	g.Draw(screen)
	if g.Redraws() != 1 {
		t.Errorf("clean frame rerendered: redraws = %d", g.Redraws())
	}

	g.ScheduleRedraw(canopy.NewLayer())
	if !g.Dirty() {
		t.Fatal("ScheduleRedraw did not mark dirty")
	}
	g.Draw(screen)
	if g.Redraws() != 2 {
		t.Errorf("redraws = %d, want 2", g.Redraws())
	}
}

func TestGameUpdate(t *testing.T) {
	var opens atomic.Int32
	l := stubLoader(&opens)
	g := NewGame(testViewport(), l)

	ticks := 0
	g.UpdateFunc = func() error {
		ticks++
		return nil
	}

	polled := false
	l.Load("ok.png", func(error) { polled = true })
	l.Wait()
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !polled || ticks != 1 {
		t.Errorf("polled = %v, ticks = %d", polled, ticks)
	}

	stop := errors.New("stop")
	g.UpdateFunc = func() error { return stop }
	if err := g.Update(); !errors.Is(err, stop) {
		t.Errorf("Update = %v, want stop", err)
	}
}

func TestGameFetchesMissingImages(t *testing.T) {
	var opens atomic.Int32
	l := stubLoader(&opens)
	g := NewGame(testViewport(), l)
	g.dirty = false

	g.canvas.missing("ok.png")
	g.canvas.missing("ok.png")
	l.Wait()
	l.Poll()

	if opens.Load() != 1 {
		t.Errorf("opens = %d, want 1", opens.Load())
	}
	if !g.Dirty() {
		t.Error("arrived image did not mark the game dirty")
	}

	g.dirty = false
	g.canvas.missing("gone.png")
	l.Wait()
	l.Poll()
	if g.Dirty() {
		t.Error("failed load marked the game dirty")
	}
}
