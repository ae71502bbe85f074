package ebitenrender

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

// ImageSource resolves image URLs to loaded images. A nil result means the
// image is not available and the draw is skipped.
type ImageSource interface {
	Image(url string) *ebiten.Image
}

// Stats counts what a Canvas submitted since the last Reset.
type Stats struct {
	Fills     int
	Strokes   int
	Triangles int
	Texts     int
	Images    int
}

// state is the part of the canvas pushed by Save.
type state struct {
	ctm       canopy.Transform
	alpha     float64
	fill      string
	gradient  canopy.Gradient
	stroke    string
	lineWidth float64
	lineJoin  string
	lineCap   string
	dash      []float64
	shadow    *canopy.Shadow
}

func defaultState() state {
	return state{
		ctm:       canopy.Identity(),
		alpha:     1,
		fill:      "black",
		stroke:    "black",
		lineWidth: 1,
		lineJoin:  "miter",
		lineCap:   "butt",
	}
}

// Canvas implements canopy.Context2D on top of an ebiten.Image. Paths are
// flattened and tessellated on the CPU and submitted with DrawTriangles
// using a shared white pixel, so solid fills and gradients are vertex
// colors.
type Canvas struct {
	dst    *ebiten.Image
	images ImageSource

	st    state
	stack []state
	path  path
	mesh  mesh
	verts []ebiten.Vertex

	colors map[string]canopy.Color
	texts  *textCache
	stats  Stats

	// missing, if set, is told about image URLs the source cannot resolve.
	missing func(url string)
}

var _ canopy.Context2D = (*Canvas)(nil)

// NewCanvas returns a canvas drawing into dst. images may be nil, in which
// case DrawImage and pattern fills are skipped.
func NewCanvas(dst *ebiten.Image, images ImageSource) *Canvas {
	return &Canvas{
		dst:    dst,
		images: images,
		st:     defaultState(),
		colors: make(map[string]canopy.Color),
		texts:  newTextCache(),
	}
}

// Reset points the canvas at dst and clears its state, path and stats.
func (c *Canvas) Reset(dst *ebiten.Image) {
	c.dst = dst
	c.st = defaultState()
	c.stack = c.stack[:0]
	c.path.reset()
	c.stats = Stats{}
}

// Stats returns the submission counters since the last Reset.
func (c *Canvas) Stats() Stats { return c.stats }

// CurrentTransform returns the current transform matrix.
func (c *Canvas) CurrentTransform() canopy.Transform { return c.st.ctm }

// Save pushes the drawing state.
func (c *Canvas) Save() {
	s := c.st
	s.dash = append([]float64(nil), c.st.dash...)
	c.stack = append(c.stack, s)
}

// Restore pops the drawing state. An unbalanced Restore is ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Transform post-multiplies the current transform by t.
func (c *Canvas) Transform(t canopy.Transform) {
	c.st.ctm.Multiply(t)
}

// SetGlobalAlpha sets the alpha applied to everything drawn.
func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.st.alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Canvas) device(x, y float64) canopy.Point2D {
	return c.st.ctm.Apply(canopy.Point2D{X: x, Y: y})
}

// scale approximates how much the current transform scales lengths.
func (c *Canvas) scale() float64 {
	t := c.st.ctm
	return math.Sqrt(math.Abs(t[0]*t[3] - t[1]*t[2]))
}

// BeginPath discards the current path.
func (c *Canvas) BeginPath() { c.path.reset() }

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() { c.path.close() }

// MoveTo starts a subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) { c.path.moveTo(c.device(x, y)) }

// LineTo adds a straight segment to (x, y).
func (c *Canvas) LineTo(x, y float64) { c.path.lineTo(c.device(x, y)) }

// Arc adds a circular arc, connected to the current point by a line.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) {
	c.Ellipse(x, y, radius, radius, startAngle, endAngle, counterClockwise)
}

// Ellipse adds an axis-aligned elliptical arc, connected to the current
// point by a line.
func (c *Canvas) Ellipse(x, y, radiusX, radiusY, startAngle, endAngle float64, counterClockwise bool) {
	if radiusX < 0 || radiusY < 0 {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterClockwise)
	segs := arcSegments(sweep, math.Max(radiusX, radiusY)*c.scale())
	for _, p := range ellipsePoints(x, y, radiusX, radiusY, startAngle, sweep, segs) {
		c.path.lineTo(c.device(p.X, p.Y))
	}
}

// Rect adds a closed rectangle subpath.
func (c *Canvas) Rect(x, y, width, height float64) {
	c.path.moveTo(c.device(x, y))
	c.path.lineTo(c.device(x+width, y))
	c.path.lineTo(c.device(x+width, y+height))
	c.path.lineTo(c.device(x, y+height))
	c.path.close()
}

// SetFillColor sets a solid fill and clears any gradient.
func (c *Canvas) SetFillColor(color string) {
	c.st.fill = color
	c.st.gradient = nil
}

// SetFillGradient sets a gradient or pattern fill.
func (c *Canvas) SetFillGradient(g canopy.Gradient) { c.st.gradient = g }

// SetStrokeColor sets the stroke color.
func (c *Canvas) SetStrokeColor(color string) { c.st.stroke = color }

// SetLineWidth sets the stroke width in local units.
func (c *Canvas) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) {
		c.st.lineWidth = width
	}
}

// SetLineJoin sets "miter", "round" or "bevel".
func (c *Canvas) SetLineJoin(join string) { c.st.lineJoin = join }

// SetLineCap sets "butt", "round" or "square".
func (c *Canvas) SetLineCap(lineCap string) { c.st.lineCap = lineCap }

// SetLineDash sets the dash pattern in local units. Empty means solid.
func (c *Canvas) SetLineDash(dashes []float64) {
	c.st.dash = append(c.st.dash[:0], dashes...)
}

// SetShadow sets the shadow; nil clears it. Blur is not rendered.
func (c *Canvas) SetShadow(s *canopy.Shadow) {
	if s == nil {
		c.st.shadow = nil
		return
	}
	cp := *s
	c.st.shadow = &cp
}

// color parses and caches a CSS color. Unparseable colors are logged once
// and reported as not ok.
func (c *Canvas) color(s string) (canopy.Color, bool) {
	if col, ok := c.colors[s]; ok {
		return col, col.A >= 0
	}
	col, err := canopy.ParseColor(s)
	if err != nil {
		canopy.Logger().Warn("skipping paint with invalid color", "color", s, "err", err)
		c.colors[s] = canopy.Color{A: -1}
		return canopy.Color{}, false
	}
	c.colors[s] = col
	return col, true
}

// Fill fills every subpath of the current path. Open subpaths are closed
// implicitly.
func (c *Canvas) Fill() {
	c.mesh.reset()
	for _, sp := range c.path.subs {
		if len(sp.pts) >= 3 {
			c.mesh.polygon(sp.pts)
		}
	}
	if len(c.mesh.inds) == 0 {
		return
	}
	c.drawShadow()

	switch g := c.st.gradient.(type) {
	case nil:
		col, ok := c.color(c.st.fill)
		if !ok {
			return
		}
		c.submitSolid(col, 0, 0)
	case *canopy.LinearGradient:
		c.submitGradient(g.Stops, c.linearParam(g))
	case *canopy.RadialGradient:
		c.submitGradient(g.Stops, c.radialParam(g))
	case *canopy.PatternGradient:
		c.submitPattern(g)
	default:
		return
	}
	c.stats.Fills++
}

// Stroke strokes every subpath of the current path with the current line
// style.
func (c *Canvas) Stroke() {
	col, ok := c.color(c.st.stroke)
	if !ok {
		return
	}
	s := c.scale()
	width := c.st.lineWidth * s
	var dash []float64
	if len(c.st.dash) > 0 {
		dash = make([]float64, len(c.st.dash))
		for i, d := range c.st.dash {
			dash[i] = d * s
		}
	}

	c.mesh.reset()
	for _, sp := range c.path.subs {
		if len(dash) == 0 {
			c.mesh.stroke(sp.pts, sp.closed, width, c.st.lineJoin, c.st.lineCap)
			continue
		}
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for _, run := range dashSegments(pts, dash) {
			c.mesh.stroke(run, false, width, c.st.lineJoin, c.st.lineCap)
		}
	}
	if len(c.mesh.inds) == 0 {
		return
	}
	c.drawShadow()
	c.submitSolid(col, 0, 0)
	c.stats.Strokes++
}

// drawShadow submits the current mesh offset by the shadow offset.
func (c *Canvas) drawShadow() {
	sh := c.st.shadow
	if sh == nil {
		return
	}
	col, ok := c.color(sh.Color)
	if !ok || col.A <= 0 {
		return
	}
	off := c.st.ctm
	off[4], off[5] = 0, 0
	d := off.Apply(sh.Offset)
	c.submitSolid(col, d.X, d.Y)
}

// vertex builds a premultiplied vertex sampling the center of the white
// pixel.
func vertex(p canopy.Point2D, col canopy.Color, alpha float64) ebiten.Vertex {
	a := float32(col.A * alpha)
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(col.R) * a,
		ColorG: float32(col.G) * a,
		ColorB: float32(col.B) * a,
		ColorA: a,
	}
}

func (c *Canvas) submitSolid(col canopy.Color, dx, dy float64) {
	c.verts = c.verts[:0]
	for _, p := range c.mesh.pts {
		p.X += dx
		p.Y += dy
		c.verts = append(c.verts, vertex(p, col, c.st.alpha))
	}
	c.submit(ensureWhitePixel(), ebiten.AddressUnsafe)
}

// submitGradient colors each vertex by sampling stops at param(p).
func (c *Canvas) submitGradient(stops []canopy.ColorStop, param func(p canopy.Point2D) float64) {
	sorted := append([]canopy.ColorStop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	cols := make([]canopy.Color, 0, len(sorted))
	pos := make([]float64, 0, len(sorted))
	for _, s := range sorted {
		if col, ok := c.color(s.Color); ok {
			cols = append(cols, col)
			pos = append(pos, s.Position)
		}
	}
	if len(cols) == 0 {
		return
	}
	c.verts = c.verts[:0]
	for _, p := range c.mesh.pts {
		c.verts = append(c.verts, vertex(p, sampleStops(pos, cols, param(p)), c.st.alpha))
	}
	c.submit(ensureWhitePixel(), ebiten.AddressUnsafe)
}

func (c *Canvas) linearParam(g *canopy.LinearGradient) func(canopy.Point2D) float64 {
	s := c.st.ctm.Apply(g.Start)
	e := c.st.ctm.Apply(g.End)
	dx, dy := e.X-s.X, e.Y-s.Y
	l2 := dx*dx + dy*dy
	return func(p canopy.Point2D) float64 {
		if l2 == 0 {
			return 0
		}
		return ((p.X-s.X)*dx + (p.Y-s.Y)*dy) / l2
	}
}

func (c *Canvas) radialParam(g *canopy.RadialGradient) func(canopy.Point2D) float64 {
	center := c.st.ctm.Apply(g.End)
	r0 := g.StartRadius * c.scale()
	r1 := g.EndRadius * c.scale()
	return func(p canopy.Point2D) float64 {
		if r1 == r0 {
			return 0
		}
		return (p.Distance(center) - r0) / (r1 - r0)
	}
}

// sampleStops interpolates the color at t, clamping outside the stops.
func sampleStops(pos []float64, cols []canopy.Color, t float64) canopy.Color {
	if t <= pos[0] {
		return cols[0]
	}
	last := len(pos) - 1
	if t >= pos[last] {
		return cols[last]
	}
	i := sort.SearchFloat64s(pos, t)
	lo, hi := i-1, i
	span := pos[hi] - pos[lo]
	if span <= 0 {
		return cols[hi]
	}
	f := (t - pos[lo]) / span
	a, b := cols[lo], cols[hi]
	return canopy.Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}

// image resolves url through the image source.
func (c *Canvas) image(url string) *ebiten.Image {
	if c.images == nil {
		return nil
	}
	img := c.images.Image(url)
	if img == nil && c.missing != nil {
		c.missing(url)
	}
	return img
}

// submitPattern textures the mesh with the pattern image in local
// coordinates. Every repeat mode tiles in both directions.
func (c *Canvas) submitPattern(g *canopy.PatternGradient) {
	img := c.image(g.URL)
	if img == nil {
		return
	}
	inv, err := c.st.ctm.Inverse()
	if err != nil {
		return
	}
	white := canopy.Color{R: 1, G: 1, B: 1, A: 1}
	c.verts = c.verts[:0]
	for _, p := range c.mesh.pts {
		v := vertex(p, white, c.st.alpha)
		local := inv.Apply(p)
		v.SrcX, v.SrcY = float32(local.X), float32(local.Y)
		c.verts = append(c.verts, v)
	}
	c.submit(img, ebiten.AddressRepeat)
}

func (c *Canvas) submit(img *ebiten.Image, address ebiten.Address) {
	if c.dst == nil || len(c.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Address = address
	op.AntiAlias = true
	c.dst.DrawTriangles(c.verts, c.mesh.inds, img, &op)
	c.stats.Triangles += c.mesh.triangles()
}

// FillText draws text with the current fill color. Only the Go font
// family is available; the family in font is ignored.
func (c *Canvas) FillText(text string, x, y float64, font, align, baseline string) {
	col, ok := c.color(c.st.fill)
	if !ok || c.dst == nil || text == "" {
		return
	}
	c.texts.draw(c.dst, text, x, y, font, align, baseline, c.st.ctm, col.WithAlpha(c.st.alpha))
	c.stats.Texts++
}

// DrawImage draws the image at url into the rectangle (x, y, width, height).
// A zero width or height uses the image's natural size.
func (c *Canvas) DrawImage(url string, x, y, width, height float64) {
	if c.dst == nil {
		return
	}
	img := c.image(url)
	if img == nil {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	if width == 0 {
		width = iw
	}
	if height == 0 {
		height = ih
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width/iw, height/ih)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(GeoM(c.st.ctm))
	op.ColorScale.ScaleAlpha(float32(c.st.alpha))
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
	c.stats.Images++
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
