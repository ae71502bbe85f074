package ebitenrender

import (
	"math"

	"github.com/phanxgames/canopy"
)

// miterLimit is the canvas default ratio of miter length to half the line
// width beyond which joins fall back to bevels.
const miterLimit = 10

// mesh is an uncolored triangle list in device space.
type mesh struct {
	pts  []canopy.Point2D
	inds []uint16
}

func (m *mesh) reset() {
	m.pts = m.pts[:0]
	m.inds = m.inds[:0]
}

func (m *mesh) triangles() int { return len(m.inds) / 3 }

func (m *mesh) tri(a, b, c canopy.Point2D) {
	base := uint16(len(m.pts))
	m.pts = append(m.pts, a, b, c)
	m.inds = append(m.inds, base, base+1, base+2)
}

// quad adds the two triangles of a quad given its corners in strip order.
func (m *mesh) quad(a0, a1, b0, b1 canopy.Point2D) {
	base := uint16(len(m.pts))
	m.pts = append(m.pts, a0, a1, b0, b1)
	m.inds = append(m.inds, base, base+1, base+2, base+1, base+3, base+2)
}

// polygon adds a triangulated ring.
func (m *mesh) polygon(ring []canopy.Point2D) {
	inds := triangulate(ring)
	if len(inds) == 0 {
		return
	}
	base := uint16(len(m.pts))
	m.pts = append(m.pts, ring...)
	for _, i := range inds {
		m.inds = append(m.inds, base+i)
	}
}

// disc adds a filled circle as a fan around its center.
func (m *mesh) disc(c canopy.Point2D, r float64) {
	if r <= 0 {
		return
	}
	segs := arcSegments(2*math.Pi, r)
	base := uint16(len(m.pts))
	m.pts = append(m.pts, c)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		m.pts = append(m.pts, canopy.Point2D{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	for i := 0; i < segs; i++ {
		m.inds = append(m.inds, base, base+1+uint16(i), base+1+uint16((i+1)%segs))
	}
}

func offset(p canopy.Point2D, nx, ny, d float64) canopy.Point2D {
	return canopy.Point2D{X: p.X + nx*d, Y: p.Y + ny*d}
}

// stroke outlines a polyline of the given width. Each segment becomes a
// quad; joins and caps fill the gaps between them.
func (m *mesh) stroke(pts []canopy.Point2D, closed bool, width float64, join, lineCap string) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	hw := width / 2
	if closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	} else if lineCap == "square" {
		pts = append([]canopy.Point2D(nil), pts...)
		extend(pts, 0, 1, hw)
		extend(pts, len(pts)-1, len(pts)-2, hw)
	}

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if a == b {
			continue
		}
		nx, ny := perpendicular(a, b)
		m.quad(offset(a, nx, ny, hw), offset(a, nx, ny, -hw), offset(b, nx, ny, hw), offset(b, nx, ny, -hw))
	}

	last := len(pts) - 1
	for i := 1; i < last; i++ {
		m.join(pts[i-1], pts[i], pts[i+1], hw, join)
	}
	if closed && last >= 2 {
		m.join(pts[last-1], pts[0], pts[1], hw, join)
	}

	if !closed && lineCap == "round" {
		m.disc(pts[0], hw)
		m.disc(pts[last], hw)
	}
}

// extend moves pts[i] away from pts[from] by d.
func extend(pts []canopy.Point2D, i, from int, d float64) {
	dx := pts[i].X - pts[from].X
	dy := pts[i].Y - pts[from].Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return
	}
	pts[i] = canopy.Point2D{X: pts[i].X + dx/ln*d, Y: pts[i].Y + dy/ln*d}
}

// join fills the wedge between the segments meeting at v. Both sides are
// filled; the inner wedge lies under the segment quads.
func (m *mesh) join(prev, v, next canopy.Point2D, hw float64, style string) {
	if style == "round" {
		m.disc(v, hw)
		return
	}
	n1x, n1y := perpendicular(prev, v)
	n2x, n2y := perpendicular(v, next)
	for _, s := range [2]float64{1, -1} {
		p1 := offset(v, n1x, n1y, s*hw)
		p2 := offset(v, n2x, n2y, s*hw)
		if style == "miter" {
			mx, my := n1x+n2x, n1y+n2y
			ml := math.Hypot(mx, my)
			if ml > 1e-10 {
				mx, my = mx/ml, my/ml
				cos := mx*n1x + my*n1y
				if cos > 1.0/miterLimit {
					tip := offset(v, mx, my, s*hw/cos)
					m.tri(v, p1, tip)
					m.tri(v, tip, p2)
					continue
				}
			}
		}
		m.tri(v, p1, p2)
	}
}
