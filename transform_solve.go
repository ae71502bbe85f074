package canopy

import (
	"errors"
	"math"
)

var (
	// ErrDegenerateCorrespondence is returned by SolveTransform when the
	// source points are coincident or collinear.
	ErrDegenerateCorrespondence = errors.New("canopy: source points do not determine an affine transform")

	// ErrInvalidViewport is returned by ViewportTransform for non-positive
	// sizes.
	ErrInvalidViewport = errors.New("canopy: viewport and visible area must have positive size")
)

// pivotEpsilon bounds the smallest usable pivot during elimination.
const pivotEpsilon = 1e-12

// SolveTransform returns the affine transform mapping each src[i] to dst[i].
//
// Each correspondence gives two equations in the six unknowns
// (m00, m01, m02, m10, m11, m12):
//
//	dst.x = m00*src.x + m01*src.y + m02
//	dst.y = m10*src.x + m11*src.y + m12
//
// The 6×6 system is solved by Gaussian elimination with partial pivoting.
func SolveTransform(src, dst [3]Point2D) (Transform, error) {
	var a [6][7]float64
	for i := 0; i < 3; i++ {
		r := 2 * i
		a[r] = [7]float64{src[i].X, src[i].Y, 1, 0, 0, 0, dst[i].X}
		a[r+1] = [7]float64{0, 0, 0, src[i].X, src[i].Y, 1, dst[i].Y}
	}

	scale := 0.0
	for _, p := range src {
		scale = math.Max(scale, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	eps := pivotEpsilon * math.Max(1, scale)

	for col := 0; col < 6; col++ {
		pivot := col
		for r := col + 1; r < 6; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) <= eps {
			return Transform{}, ErrDegenerateCorrespondence
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := col + 1; r < 6; r++ {
			f := a[r][col] / a[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < 7; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var x [6]float64
	for r := 5; r >= 0; r-- {
		sum := a[r][6]
		for c := r + 1; c < 6; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	// x = [m00, m01, m02, m10, m11, m12]
	return Transform{x[0], x[3], x[1], x[4], x[2], x[5]}, nil
}

// ViewportTransform returns the transform that fits visible into a viewport
// of the given size. A single uniform scale, the smaller of the two axis
// ratios, preserves the aspect ratio; the other axis is centered.
func ViewportTransform(visible Rect, width, height float64) (Transform, error) {
	if visible.Width <= 0 || visible.Height <= 0 || width <= 0 || height <= 0 {
		return Transform{}, ErrInvalidViewport
	}
	scaleX := width / visible.Width
	scaleY := height / visible.Height
	x, y := visible.X, visible.Y

	var scale float64
	if scaleX > scaleY {
		scale = scaleY
		x -= (width/scale - visible.Width) / 2
	} else {
		scale = scaleX
		y -= (height/scale - visible.Height) / 2
	}
	return Transform{scale, 0, 0, scale, -x * scale, -y * scale}, nil
}
