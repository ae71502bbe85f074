package canopy

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonInvertibleTransform is returned by Transform.Inverse when the
// determinant is within machine epsilon of zero.
var ErrNonInvertibleTransform = errors.New("canopy: transform is not invertible")

// machineEpsilon is the float64 unit roundoff.
const machineEpsilon = 2.220446049250313e-16

// Transform is a 2D affine matrix stored as [m00, m10, m01, m11, m02, m12]:
//
//	| m00 m01 m02 |
//	| m10 m11 m12 |
//	|  0   0   1  |
//
// The zero value is not the identity; use Identity. Operations modify the
// receiver in place and post-multiply: t.Translate(x, y) yields t × T(x, y),
// so the last operation applied is the first one a point goes through.
type Transform [6]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// NewTransform returns the matrix with the given elements.
func NewTransform(m00, m10, m01, m11, m02, m12 float64) Transform {
	return Transform{m00, m10, m01, m11, m02, m12}
}

// Copy returns an independent copy of t.
func (t *Transform) Copy() Transform {
	return *t
}

// ScaleX returns m00.
func (t *Transform) ScaleX() float64 { return t[0] }

// ShearY returns m10.
func (t *Transform) ShearY() float64 { return t[1] }

// ShearX returns m01.
func (t *Transform) ShearX() float64 { return t[2] }

// ScaleY returns m11.
func (t *Transform) ScaleY() float64 { return t[3] }

// TranslateX returns m02.
func (t *Transform) TranslateX() float64 { return t[4] }

// TranslateY returns m12.
func (t *Transform) TranslateY() float64 { return t[5] }

// IsIdentity reports whether t is exactly the identity.
func (t *Transform) IsIdentity() bool {
	return *t == Identity()
}

// Translate appends a translation by (tx, ty).
func (t *Transform) Translate(tx, ty float64) *Transform {
	t[4] += t[0]*tx + t[2]*ty
	t[5] += t[1]*tx + t[3]*ty
	return t
}

// Scale appends a scale by (sx, sy).
func (t *Transform) Scale(sx, sy float64) *Transform {
	t[0] *= sx
	t[1] *= sx
	t[2] *= sy
	t[3] *= sy
	return t
}

// Shear appends the shear matrix [1 shx; shy 1].
func (t *Transform) Shear(shx, shy float64) *Transform {
	m00, m10, m01, m11 := t[0], t[1], t[2], t[3]
	t[0] = m00 + m01*shy
	t[1] = m10 + m11*shy
	t[2] = m01 + m00*shx
	t[3] = m11 + m10*shx
	return t
}

// Rotate appends a rotation by theta radians (clockwise on a y-down surface).
func (t *Transform) Rotate(theta float64) *Transform {
	sin, cos := math.Sincos(theta)
	m00, m10, m01, m11 := t[0], t[1], t[2], t[3]
	t[0] = m00*cos + m01*sin
	t[1] = m10*cos + m11*sin
	t[2] = m01*cos - m00*sin
	t[3] = m11*cos - m10*sin
	return t
}

// Multiply sets t = t × other.
func (t *Transform) Multiply(other Transform) *Transform {
	*t = multiplyAffine(*t, other)
	return t
}

// Concatenate is an alias of Multiply.
func (t *Transform) Concatenate(other Transform) *Transform {
	return t.Multiply(other)
}

// Inverse returns the inverse of t, or ErrNonInvertibleTransform when
// |det| <= machine epsilon.
func (t *Transform) Inverse() (Transform, error) {
	det := t[0]*t[3] - t[2]*t[1]
	if math.Abs(det) <= machineEpsilon || math.IsNaN(det) {
		return Transform{}, ErrNonInvertibleTransform
	}
	invDet := 1.0 / det
	a := t[3] * invDet
	b := -t[1] * invDet
	c := -t[2] * invDet
	d := t[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*t[4] + c*t[5]),
		-(b*t[4] + d*t[5]),
	}, nil
}

// TransformPoint writes t applied to src into dst. src and dst may be the
// same point.
func (t *Transform) TransformPoint(src, dst *Point2D) {
	x, y := transformPoint(*t, src.X, src.Y)
	dst.X, dst.Y = x, y
}

// Apply returns t applied to p.
func (t *Transform) Apply(p Point2D) Point2D {
	x, y := transformPoint(*t, p.X, p.Y)
	return Point2D{x, y}
}

// String implements fmt.Stringer.
func (t Transform) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g, %g, %g]", t[0], t[1], t[2], t[3], t[4], t[5])
}

// multiplyAffine multiplies two 2D affine matrices: result = p × c.
func multiplyAffine(p, c Transform) Transform {
	return Transform{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Transform, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// --- Node transforms ---

// combinedTransform derives a node's local matrix from its attributes:
//
//	T(x, y) · [explicit transform | R(rotation) · S(scale) · Sh(shear) · T(offset)]
//
// An explicit transform attribute replaces rotation, scale, shear and offset.
// Each step is skipped when it would be the identity.
func combinedTransform(a *Attributes) Transform {
	xfrm := Identity()
	x, y := a.X(), a.Y()
	if x != 0 || y != 0 {
		xfrm.Translate(x, y)
	}
	if t, ok := a.Transform(); ok {
		return *xfrm.Multiply(t)
	}
	if r := a.Rotation(); r != 0 {
		xfrm.Rotate(r)
	}
	if a.IsDefined(AttrScale) {
		if s := a.Scale(); s.X != 1 || s.Y != 1 {
			xfrm.Scale(s.X, s.Y)
		}
	}
	if a.IsDefined(AttrShear) {
		if s := a.Shear(); s.X != 0 || s.Y != 0 {
			xfrm.Shear(s.X, s.Y)
		}
	}
	if a.IsDefined(AttrOffset) {
		if o := a.Offset(); o.X != 0 || o.Y != 0 {
			xfrm.Translate(o.X, o.Y)
		}
	}
	return xfrm
}

// absoluteTransform composes the combined transforms from the root down to
// n, ancestor first.
func absoluteTransform(n Node) Transform {
	var chain []Node
	for p := n; p != nil; p = parentNode(p) {
		chain = append(chain, p)
	}
	xfrm := Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		xfrm.Multiply(chain[i].CombinedTransform())
	}
	return xfrm
}

// parentNode returns n's parent as a Node, or nil. It avoids returning a
// non-nil interface holding a nil container.
func parentNode(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	return p
}
