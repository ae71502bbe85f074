package canopy

import (
	"fmt"
	"math"
)

// Point2D is a 2D point used for positions, offsets, scales and path vertices
// throughout the API. Its document form is {"x": <number>, "y": <number>}.
type Point2D struct {
	X, Y float64
}

// Distance returns the euclidean distance between p and q.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// String implements fmt.Stringer.
func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point2D) toObject() map[string]any {
	return map[string]any{"x": p.X, "y": p.Y}
}

func (p Point2D) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// pointFromValue reads a {x, y} object. Missing or non-numeric coordinates
// read as zero; a NaN or infinite coordinate makes the whole point unusable.
func pointFromValue(v any) (Point2D, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Point2D{}, false
	}
	for _, k := range [2]string{"x", "y"} {
		if f, ok := obj[k].(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return Point2D{}, false
		}
	}
	return Point2D{X: numberOr(obj["x"], 0), Y: numberOr(obj["y"], 0)}, true
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}
