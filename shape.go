package canopy

// Shape is a drawable leaf node. Prepare builds the shape's path on ctx in
// local coordinates; the shared Draw pipeline then applies shadow, fill and
// stroke. Prepare returns false when there is nothing to fill or stroke,
// either because the shape is degenerate or because it painted itself.
type Shape interface {
	Node
	ShapeType() ShapeType
	Prepare(ctx Context2D, alpha float64) bool
}

// ShapeBase implements the parts of Shape shared by every shape. Custom
// shapes embed it and call Init from their constructor.
type ShapeBase struct {
	NodeBase
	sself      Shape
	shapeType  ShapeType
	strokeOnly bool
}

// Init wires the embedding shape. attrs may be nil for an empty store.
func (s *ShapeBase) Init(self Shape, t ShapeType, attrs *Attributes) {
	s.initNode(self, NodeTypeShape, attrs)
	s.sself = self
	s.shapeType = t
}

// ShapeType returns the concrete shape tag.
func (s *ShapeBase) ShapeType() ShapeType { return s.shapeType }

// TypeName returns the shape type name, which is the shape's document tag.
func (s *ShapeBase) TypeName() string { return s.shapeType.String() }

// Draw renders the shape: transform, alpha, path, then shadow, fill and
// stroke. Invisible or fully transparent shapes draw nothing.
func (s *ShapeBase) Draw(ctx Context2D, alpha float64) {
	a := s.attrs
	if !a.Visible() {
		return
	}
	alpha *= a.Alpha()
	if alpha <= 0 {
		return
	}
	ctx.Save()
	ctx.Transform(s.sself.CombinedTransform())
	ctx.SetGlobalAlpha(alpha)
	ctx.BeginPath()
	if s.sself.Prepare(ctx, alpha) {
		shadow := a.Shadow()
		if shadow != nil {
			ctx.SetShadow(shadow)
		}
		filled := s.fill(ctx)
		if filled && shadow != nil && shadow.OnFill {
			ctx.SetShadow(nil)
		}
		s.stroke(ctx)
	}
	ctx.Restore()
}

// fill paints the current path with the fill gradient or color. It reports
// whether anything was filled.
func (s *ShapeBase) fill(ctx Context2D) bool {
	if s.strokeOnly {
		return false
	}
	a := s.attrs
	if g := a.FillGradient(); g != nil {
		ctx.SetFillGradient(g)
		ctx.Fill()
		return true
	}
	if c := a.FillColor(); c != "" {
		ctx.SetFillColor(c)
		ctx.Fill()
		return true
	}
	return false
}

// stroke outlines the current path. Shapes without a stroke color are only
// stroked when they are stroke-only or set a stroke width explicitly; the
// color then falls back to the configured default.
func (s *ShapeBase) stroke(ctx Context2D) {
	a := s.attrs
	color := a.StrokeColor()
	if color == "" {
		if !s.strokeOnly && !a.IsDefined(AttrStrokeWidth) {
			return
		}
		color = current.StrokeColor
	}
	w := a.StrokeWidth()
	if w <= 0 {
		return
	}
	ctx.SetStrokeColor(color)
	ctx.SetLineWidth(w)
	ctx.SetLineJoin(a.LineJoin())
	ctx.SetLineCap(a.LineCap())
	if d := a.DashArray(); len(d) > 0 {
		ctx.SetLineDash(d)
	}
	ctx.Stroke()
}
