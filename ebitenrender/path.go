package ebitenrender

import (
	"math"

	"github.com/phanxgames/canopy"
)

// subpath is a flattened run of device-space points.
type subpath struct {
	pts    []canopy.Point2D
	closed bool
}

// path accumulates subpaths between BeginPath and Fill/Stroke. Points are
// transformed by the current transform when they are added, matching the
// canvas model.
type path struct {
	subs []subpath
}

func (p *path) reset() {
	p.subs = p.subs[:0]
}

func (p *path) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

func (p *path) moveTo(pt canopy.Point2D) {
	if cur := p.current(); cur != nil && len(cur.pts) == 1 && !cur.closed {
		cur.pts[0] = pt
		return
	}
	p.subs = append(p.subs, subpath{pts: []canopy.Point2D{pt}})
}

func (p *path) lineTo(pt canopy.Point2D) {
	cur := p.current()
	if cur == nil || cur.closed {
		p.moveTo(pt)
		return
	}
	if last := cur.pts[len(cur.pts)-1]; last == pt {
		return
	}
	cur.pts = append(cur.pts, pt)
}

func (p *path) close() {
	cur := p.current()
	if cur == nil || len(cur.pts) == 0 {
		return
	}
	if len(cur.pts) > 1 && cur.pts[0] == cur.pts[len(cur.pts)-1] {
		cur.pts = cur.pts[:len(cur.pts)-1]
	}
	cur.closed = true
}

// arcSweep normalizes an angle range the way canvas arcs do. Clockwise arcs
// (ccw false) sweep positive angles in a Y-down space. A range of a full
// turn or more draws the whole circle.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	sweep := end - start
	if math.Abs(sweep) >= tau {
		if ccw {
			return -tau
		}
		return tau
	}
	if !ccw && sweep < 0 {
		sweep += tau
	}
	if ccw && sweep > 0 {
		sweep -= tau
	}
	return sweep
}

// arcSegments picks a segment count so that chords stay within roughly a
// quarter pixel of the true curve at the given device radius.
func arcSegments(sweep, radius float64) int {
	if radius <= 0 {
		return 1
	}
	step := 2 * math.Acos(math.Max(-1, 1-0.25/radius))
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 4
	}
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 4 {
		n = 4
	}
	if n > 256 {
		n = 256
	}
	return n
}

// ellipsePoints samples an elliptical arc in local space.
func ellipsePoints(cx, cy, rx, ry, start, sweep float64, segs int) []canopy.Point2D {
	pts := make([]canopy.Point2D, segs+1)
	for i := 0; i <= segs; i++ {
		a := start + sweep*float64(i)/float64(segs)
		pts[i] = canopy.Point2D{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return pts
}

// polygonArea returns the signed area of a closed ring. Positive means
// clockwise in a Y-down space.
func polygonArea(pts []canopy.Point2D) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

func cross(o, a, b canopy.Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func inTriangle(p, a, b, c canopy.Point2D) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// triangulate returns triangle indices into pts using ear clipping. It
// handles simple polygons of either winding and falls back to a fan when
// no ear can be found, as happens for self-intersecting rings.
func triangulate(pts []canopy.Point2D) []uint16 {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sign := 1.0
	if polygonArea(pts) < 0 {
		sign = -1
	}

	out := make([]uint16, 0, (n-2)*3)
	for guard := 0; len(idx) > 3 && guard < n*n; guard++ {
		found := false
		for i := range idx {
			ia := idx[(i+len(idx)-1)%len(idx)]
			ib := idx[i]
			ic := idx[(i+1)%len(idx)]
			a, b, c := pts[ia], pts[ib], pts[ic]
			if cross(a, b, c)*sign <= 0 {
				continue
			}
			ear := true
			for _, j := range idx {
				if j == ia || j == ib || j == ic {
					continue
				}
				if inTriangle(pts[j], a, b, c) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			out = append(out, uint16(ia), uint16(ib), uint16(ic))
			idx = append(idx[:i], idx[i+1:]...)
			found = true
			break
		}
		if !found {
			return fan(idx, out)
		}
	}
	if len(idx) == 3 {
		out = append(out, uint16(idx[0]), uint16(idx[1]), uint16(idx[2]))
	}
	return out
}

// fan triangulates the remaining ring around its first vertex.
func fan(idx []int, out []uint16) []uint16 {
	for i := 1; i+1 < len(idx); i++ {
		out = append(out, uint16(idx[0]), uint16(idx[i]), uint16(idx[i+1]))
	}
	return out
}

// dashSegments splits a polyline into the "on" runs of a dash pattern.
// An empty or all-zero pattern returns the polyline unchanged.
func dashSegments(pts []canopy.Point2D, pattern []float64) [][]canopy.Point2D {
	total := 0.0
	for _, d := range pattern {
		total += math.Max(d, 0)
	}
	if len(pts) < 2 || total <= 0 {
		return [][]canopy.Point2D{pts}
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}

	var out [][]canopy.Point2D
	cur := []canopy.Point2D{pts[0]}
	k := 0
	left := math.Max(pattern[0], 0)
	on := true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := a.Distance(b)
		pos := 0.0
		for seg-pos > left {
			pos += left
			t := pos / seg
			p := canopy.Point2D{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				cur = append(cur, p)
				out = append(out, cur)
				cur = nil
			} else {
				cur = []canopy.Point2D{p}
			}
			on = !on
			k = (k + 1) % len(pattern)
			left = math.Max(pattern[k], 0)
		}
		left -= seg - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

// perpendicular returns the unit left-perpendicular of the segment from a
// to b.
func perpendicular(a, b canopy.Point2D) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
