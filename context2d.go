package canopy

// Context2D is the drawing surface a renderer hands to Node.Draw. It mirrors
// an immediate-mode canvas: Transform post-multiplies the current matrix,
// Save and Restore push and pop the full drawing state, and path methods
// build the current path in the current coordinate space.
//
// Nodes only describe what to draw; rasterization belongs to the
// implementation (see package ebitenrender).
type Context2D interface {
	Save()
	Restore()
	Transform(t Transform)
	SetGlobalAlpha(alpha float64)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool)
	Ellipse(x, y, radiusX, radiusY, startAngle, endAngle float64, counterClockwise bool)
	Rect(x, y, width, height float64)

	SetFillColor(color string)
	SetFillGradient(g Gradient)
	Fill()

	SetStrokeColor(color string)
	SetLineWidth(width float64)
	SetLineJoin(join string)
	SetLineCap(lineCap string)
	SetLineDash(dashes []float64)
	Stroke()

	// SetShadow sets the shadow for subsequent fills and strokes; nil clears it.
	SetShadow(s *Shadow)

	FillText(text string, x, y float64, font, align, baseline string)
	DrawImage(url string, x, y, width, height float64)
}

// Render draws n and its descendants onto ctx. Ancestors' transforms are not
// applied; render from the root for absolute placement.
func Render(ctx Context2D, n Node) {
	n.Draw(ctx, 1)
}
