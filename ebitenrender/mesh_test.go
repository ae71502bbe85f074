package ebitenrender

import (
	"testing"

	"github.com/phanxgames/canopy"
)

func TestMeshStrokeSegments(t *testing.T) {
	var m mesh
	m.stroke([]canopy.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, false, 2, "miter", "butt")
	if m.triangles() != 2 {
		t.Fatalf("single segment triangles = %d, want 2", m.triangles())
	}
	// The quad spans y = -1..1.
	minY, maxY := 0.0, 0.0
	for _, p := range m.pts {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	if minY != -1 || maxY != 1 {
		t.Errorf("stroke extent y = [%g, %g], want [-1, 1]", minY, maxY)
	}
}

func TestMeshStrokeCapsAndJoins(t *testing.T) {
	corner := []canopy.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	count := func(join, lineCap string, closed bool) int {
		var m mesh
		m.stroke(corner, closed, 4, join, lineCap)
		return m.triangles()
	}

	bevel := count("bevel", "butt", false)
	if bevel != 4+2 {
		t.Errorf("bevel triangles = %d, want 6", bevel)
	}
	if miter := count("miter", "butt", false); miter != 4+4 {
		t.Errorf("miter triangles = %d, want 8", miter)
	}
	if round := count("round", "round", false); round <= bevel {
		t.Errorf("round joins and caps should add triangles: %d", round)
	}
	if closed := count("bevel", "butt", true); closed != 6+3*2 {
		t.Errorf("closed triangles = %d, want 12", closed)
	}

	var m mesh
	m.stroke([]canopy.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, false, 2, "miter", "square")
	minX, maxX := 0.0, 0.0
	for _, p := range m.pts {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}
	if minX != -1 || maxX != 11 {
		t.Errorf("square cap extent x = [%g, %g], want [-1, 11]", minX, maxX)
	}
}

func TestMeshStrokeDegenerate(t *testing.T) {
	var m mesh
	m.stroke([]canopy.Point2D{{X: 1, Y: 1}}, false, 2, "miter", "butt")
	m.stroke([]canopy.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}}, false, 0, "miter", "butt")
	if m.triangles() != 0 {
		t.Errorf("degenerate strokes produced %d triangles", m.triangles())
	}
}

func TestMeshPolygonOffsetsIndices(t *testing.T) {
	var m mesh
	m.polygon([]canopy.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	m.polygon([]canopy.Point2D{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}})
	if m.triangles() != 2 {
		t.Fatalf("triangles = %d", m.triangles())
	}
	for _, i := range m.inds[3:] {
		if i < 3 {
			t.Errorf("second polygon index %d points into the first", i)
		}
	}
}
