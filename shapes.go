package canopy

import (
	"fmt"
	"math"
)

// --- Rectangle ---

// Rectangle is an axis-aligned box anchored at its top-left corner, with
// optional rounded corners.
type Rectangle struct {
	ShapeBase
}

// NewRectangle creates a width×height rectangle.
func NewRectangle(width, height float64) *Rectangle {
	r := newRectangle(nil)
	r.attrs.SetWidth(width)
	r.attrs.SetHeight(height)
	return r
}

func newRectangle(attrs *Attributes) *Rectangle {
	r := &Rectangle{}
	r.Init(r, ShapeTypeRectangle, attrs)
	return r
}

// Prepare builds the rectangle path.
func (r *Rectangle) Prepare(ctx Context2D, _ float64) bool {
	w, h := r.attrs.Width(), r.attrs.Height()
	if w <= 0 || h <= 0 {
		return false
	}
	cr := math.Min(r.attrs.CornerRadius(), math.Min(w, h)/2)
	if cr <= 0 {
		ctx.Rect(0, 0, w, h)
		return true
	}
	ctx.MoveTo(cr, 0)
	ctx.LineTo(w-cr, 0)
	ctx.Arc(w-cr, cr, cr, -math.Pi/2, 0, false)
	ctx.LineTo(w, h-cr)
	ctx.Arc(w-cr, h-cr, cr, 0, math.Pi/2, false)
	ctx.LineTo(cr, h)
	ctx.Arc(cr, h-cr, cr, math.Pi/2, math.Pi, false)
	ctx.LineTo(0, cr)
	ctx.Arc(cr, cr, cr, math.Pi, 3*math.Pi/2, false)
	ctx.ClosePath()
	return true
}

// --- Circle ---

// Circle is centered on its origin.
type Circle struct {
	ShapeBase
}

// NewCircle creates a circle of the given radius.
func NewCircle(radius float64) *Circle {
	c := newCircle(nil)
	c.attrs.SetRadius(radius)
	return c
}

func newCircle(attrs *Attributes) *Circle {
	c := &Circle{}
	c.Init(c, ShapeTypeCircle, attrs)
	return c
}

// Prepare builds the circle path.
func (c *Circle) Prepare(ctx Context2D, _ float64) bool {
	r := c.attrs.Radius()
	if r <= 0 {
		return false
	}
	ctx.Arc(0, 0, r, 0, 2*math.Pi, true)
	return true
}

// --- Ellipse ---

// Ellipse is centered on its origin; width and height are its diameters.
type Ellipse struct {
	ShapeBase
}

// NewEllipse creates an ellipse with the given diameters.
func NewEllipse(width, height float64) *Ellipse {
	e := newEllipse(nil)
	e.attrs.SetWidth(width)
	e.attrs.SetHeight(height)
	return e
}

func newEllipse(attrs *Attributes) *Ellipse {
	e := &Ellipse{}
	e.Init(e, ShapeTypeEllipse, attrs)
	return e
}

// Prepare builds the ellipse path.
func (e *Ellipse) Prepare(ctx Context2D, _ float64) bool {
	w, h := e.attrs.Width(), e.attrs.Height()
	if w <= 0 || h <= 0 {
		return false
	}
	ctx.Ellipse(0, 0, w/2, h/2, 0, 2*math.Pi, true)
	return true
}

// --- Line, PolyLine, Polygon ---

// Line is a single stroked segment between its first two points.
type Line struct {
	ShapeBase
}

// NewLine creates a line from (x1, y1) to (x2, y2).
func NewLine(x1, y1, x2, y2 float64) *Line {
	l := newLine(nil)
	l.attrs.SetPoints([]Point2D{{x1, y1}, {x2, y2}})
	return l
}

func newLine(attrs *Attributes) *Line {
	l := &Line{}
	l.Init(l, ShapeTypeLine, attrs)
	l.strokeOnly = true
	return l
}

// Prepare builds the segment path.
func (l *Line) Prepare(ctx Context2D, _ float64) bool {
	pts := l.attrs.Points()
	if len(pts) < 2 {
		return false
	}
	ctx.MoveTo(pts[0].X, pts[0].Y)
	ctx.LineTo(pts[1].X, pts[1].Y)
	return true
}

// PolyLine is an open stroked path through its points.
type PolyLine struct {
	ShapeBase
}

// NewPolyLine creates an open path through points.
func NewPolyLine(points ...Point2D) *PolyLine {
	p := newPolyLine(nil)
	p.attrs.SetPoints(points)
	return p
}

func newPolyLine(attrs *Attributes) *PolyLine {
	p := &PolyLine{}
	p.Init(p, ShapeTypePolyLine, attrs)
	p.strokeOnly = true
	return p
}

// Prepare builds the open path.
func (p *PolyLine) Prepare(ctx Context2D, _ float64) bool {
	return tracePoints(ctx, p.attrs.Points(), 2, false)
}

// Polygon is a closed path through its points.
type Polygon struct {
	ShapeBase
}

// NewPolygon creates a closed path through points.
func NewPolygon(points ...Point2D) *Polygon {
	p := newPolygon(nil)
	p.attrs.SetPoints(points)
	return p
}

func newPolygon(attrs *Attributes) *Polygon {
	p := &Polygon{}
	p.Init(p, ShapeTypePolygon, attrs)
	return p
}

// Prepare builds the closed path.
func (p *Polygon) Prepare(ctx Context2D, _ float64) bool {
	return tracePoints(ctx, p.attrs.Points(), 3, true)
}

func tracePoints(ctx Context2D, pts []Point2D, minPoints int, closed bool) bool {
	if len(pts) < minPoints {
		return false
	}
	ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	if closed {
		ctx.ClosePath()
	}
	return true
}

// --- RegularPolygon, Star ---

// RegularPolygon is an n-sided polygon inscribed in a circle centered on
// its origin, with the first vertex straight up.
type RegularPolygon struct {
	ShapeBase
}

// NewRegularPolygon creates a regular polygon.
func NewRegularPolygon(sides int, radius float64) *RegularPolygon {
	p := newRegularPolygon(nil)
	p.attrs.SetSides(sides)
	p.attrs.SetRadius(radius)
	return p
}

func newRegularPolygon(attrs *Attributes) *RegularPolygon {
	p := &RegularPolygon{}
	p.Init(p, ShapeTypeRegularPolygon, attrs)
	return p
}

// Vertices returns the polygon's corners in local coordinates.
func (p *RegularPolygon) Vertices() []Point2D {
	n, r := p.attrs.Sides(), p.attrs.Radius()
	if n < 3 || r <= 0 {
		return nil
	}
	out := make([]Point2D, n)
	for i := range out {
		sin, cos := math.Sincos(float64(i) * 2 * math.Pi / float64(n))
		out[i] = Point2D{r * sin, -r * cos}
	}
	return out
}

// Prepare builds the polygon path.
func (p *RegularPolygon) Prepare(ctx Context2D, _ float64) bool {
	return tracePoints(ctx, p.Vertices(), 3, true)
}

// Star alternates between outer and inner radius points around its origin,
// starting straight up.
type Star struct {
	ShapeBase
}

// NewStar creates a star with the given number of points.
func NewStar(points int, innerRadius, outerRadius float64) *Star {
	s := newStar(nil)
	s.attrs.SetStarPoints(points)
	s.attrs.SetInnerRadius(innerRadius)
	s.attrs.SetOuterRadius(outerRadius)
	return s
}

func newStar(attrs *Attributes) *Star {
	s := &Star{}
	s.Init(s, ShapeTypeStar, attrs)
	return s
}

// Vertices returns the star's 2n corners in local coordinates.
func (s *Star) Vertices() []Point2D {
	n := s.attrs.StarPoints()
	inner, outer := s.attrs.InnerRadius(), s.attrs.OuterRadius()
	if n < 2 || inner <= 0 || outer <= 0 {
		return nil
	}
	out := make([]Point2D, 2*n)
	for i := range out {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math.Sincos(float64(i) * math.Pi / float64(n))
		out[i] = Point2D{r * sin, -r * cos}
	}
	return out
}

// Prepare builds the star path.
func (s *Star) Prepare(ctx Context2D, _ float64) bool {
	return tracePoints(ctx, s.Vertices(), 4, true)
}

// --- Arc ---

// Arc is a circular arc centered on its origin. Angles are in radians.
type Arc struct {
	ShapeBase
}

// NewArc creates an arc.
func NewArc(radius, startAngle, endAngle float64, counterClockwise bool) *Arc {
	a := newArc(nil)
	a.attrs.SetRadius(radius)
	a.attrs.SetStartAngle(startAngle)
	a.attrs.SetEndAngle(endAngle)
	a.attrs.SetCounterClockwise(counterClockwise)
	return a
}

func newArc(attrs *Attributes) *Arc {
	a := &Arc{}
	a.Init(a, ShapeTypeArc, attrs)
	return a
}

// Prepare builds the arc path.
func (a *Arc) Prepare(ctx Context2D, _ float64) bool {
	r := a.attrs.Radius()
	if r <= 0 {
		return false
	}
	ctx.Arc(0, 0, r, a.attrs.StartAngle(), a.attrs.EndAngle(), a.attrs.CounterClockwise())
	return true
}

// --- Text ---

// Text draws a single line of text at its origin.
type Text struct {
	ShapeBase
}

// NewText creates a text shape.
func NewText(text string) *Text {
	t := newText(nil)
	t.attrs.SetText(text)
	return t
}

func newText(attrs *Attributes) *Text {
	t := &Text{}
	t.Init(t, ShapeTypeText, attrs)
	return t
}

// Font returns the CSS font shorthand for this text, e.g. "bold 24px Inter".
func (t *Text) Font() string {
	return fmt.Sprintf("%s %gpx %s", t.attrs.FontStyle(), t.attrs.FontSize(), t.attrs.FontFamily())
}

// Prepare draws the text directly. Text without a fill color uses the
// default stroke color.
func (t *Text) Prepare(ctx Context2D, _ float64) bool {
	s := t.attrs.Text()
	if s == "" {
		return false
	}
	color := t.attrs.FillColor()
	if color == "" {
		color = current.StrokeColor
	}
	ctx.SetFillColor(color)
	ctx.FillText(s, 0, 0, t.Font(), t.attrs.TextAlign(), t.attrs.TextBaseline())
	return false
}

// --- Picture ---

// ImageLoader fetches images for Picture shapes. Load must call ready
// exactly once, possibly from another goroutine the renderer synchronizes.
type ImageLoader interface {
	Load(url string, ready func(err error))
}

var imageLoader ImageLoader

// SetImageLoader installs the loader used by Pictures. With no loader
// Pictures are ready immediately and the renderer resolves the URL itself.
func SetImageLoader(l ImageLoader) {
	imageLoader = l
}

// Picture draws an image with its top-left corner at the origin. A zero
// width or height draws the image at its natural size.
type Picture struct {
	ShapeBase
	ready bool
}

// NewPicture creates a picture and starts loading url.
func NewPicture(url string) *Picture {
	p := newPicture(nil)
	p.attrs.SetURL(url)
	p.load()
	return p
}

func newPicture(attrs *Attributes) *Picture {
	p := &Picture{}
	p.Init(p, ShapeTypePicture, attrs)
	return p
}

// IsReady reports whether the image finished loading.
func (p *Picture) IsReady() bool { return p.ready }

// load starts loading the image. When it arrives the enclosing layer is
// scheduled for redraw.
func (p *Picture) load() {
	if imageLoader == nil {
		p.ready = true
		return
	}
	url := p.attrs.URL()
	imageLoader.Load(url, func(err error) {
		if err != nil {
			logger.Warn("picture failed to load", "url", url, "err", err)
			return
		}
		p.ready = true
		if l := p.Layer(); l != nil {
			l.BatchDraw()
		}
	})
}

// Prepare draws the image once loaded.
func (p *Picture) Prepare(ctx Context2D, _ float64) bool {
	if !p.ready || p.attrs.URL() == "" {
		return false
	}
	ctx.DrawImage(p.attrs.URL(), 0, 0, p.attrs.Width(), p.attrs.Height())
	return false
}
