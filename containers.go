package canopy

// --- Accepted child predicates ---

func isScene(n Node) bool { return n.NodeType() == NodeTypeScene }

func isLayer(n Node) bool { return n.NodeType() == NodeTypeLayer }

func isGroupOrShape(n Node) bool {
	t := n.NodeType()
	return t == NodeTypeGroup || t == NodeTypeShape
}

// --- Viewport ---

// Viewport is the root of a scene graph. It holds Scenes and owns the
// visible area; its Transform attribute maps world coordinates to screen
// pixels.
type Viewport struct {
	ContainerBase
}

// NewViewport creates a viewport of the given pixel size.
func NewViewport(width, height float64) *Viewport {
	attrs := NewAttributes()
	attrs.SetWidth(width)
	attrs.SetHeight(height)
	return newViewport(attrs)
}

func newViewport(attrs *Attributes) *Viewport {
	v := &Viewport{}
	v.initContainer(v, NodeTypeViewport, attrs, isScene)
	return v
}

// Viewport returns v itself.
func (v *Viewport) Viewport() *Viewport { return v }

// Width returns the viewport width in pixels.
func (v *Viewport) Width() float64 { return v.attrs.Width() }

// Height returns the viewport height in pixels.
func (v *Viewport) Height() float64 { return v.attrs.Height() }

// SetSize resizes the viewport. The current transform is kept; call FitTo
// again to refit.
func (v *Viewport) SetSize(width, height float64) {
	v.attrs.SetWidth(width)
	v.attrs.SetHeight(height)
}

// FitTo sets the viewport transform so that visible fills the viewport,
// preserving aspect ratio and centering the slack axis.
func (v *Viewport) FitTo(visible Rect) error {
	xfrm, err := ViewportTransform(visible, v.Width(), v.Height())
	if err != nil {
		return err
	}
	v.attrs.SetTransform(&xfrm)
	return nil
}

// ScreenToWorld converts a viewport pixel coordinate into world space.
func (v *Viewport) ScreenToWorld(p Point2D) (Point2D, error) {
	return v.WorldToLocal(p)
}

// Scenes returns the viewport's scenes in paint order.
func (v *Viewport) Scenes() []*Scene {
	out := make([]*Scene, 0, len(v.children))
	for _, c := range v.children {
		if s, ok := c.(*Scene); ok {
			out = append(out, s)
		}
	}
	return out
}

// MainScene returns the first scene, or nil.
func (v *Viewport) MainScene() *Scene {
	for _, c := range v.children {
		if s, ok := c.(*Scene); ok {
			return s
		}
	}
	return nil
}

// --- Scene ---

// Scene groups Layers under a Viewport.
type Scene struct {
	ContainerBase
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return newScene(nil)
}

func newScene(attrs *Attributes) *Scene {
	s := &Scene{}
	s.initContainer(s, NodeTypeScene, attrs, isLayer)
	return s
}

// Scene returns s itself.
func (s *Scene) Scene() *Scene { return s }

// Layers returns the scene's layers in paint order.
func (s *Scene) Layers() []*Layer {
	out := make([]*Layer, 0, len(s.children))
	for _, c := range s.children {
		if l, ok := c.(*Layer); ok {
			out = append(out, l)
		}
	}
	return out
}

// --- Layer ---

// RedrawScheduler receives redraw requests from Layer.BatchDraw. Renderers
// install one with SetRedrawScheduler and coalesce requests into frames.
type RedrawScheduler interface {
	ScheduleRedraw(l *Layer)
}

var redrawScheduler RedrawScheduler

// SetRedrawScheduler installs s as the target of Layer.BatchDraw. nil
// disables scheduling.
func SetRedrawScheduler(s RedrawScheduler) {
	redrawScheduler = s
}

// Layer is a drawing surface within a Scene. It holds Groups and Shapes.
type Layer struct {
	ContainerBase
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return newLayer(nil)
}

func newLayer(attrs *Attributes) *Layer {
	l := &Layer{}
	l.initContainer(l, NodeTypeLayer, attrs, isGroupOrShape)
	return l
}

// Layer returns l itself.
func (l *Layer) Layer() *Layer { return l }

// BatchDraw requests a redraw of this layer on the next frame.
func (l *Layer) BatchDraw() {
	if redrawScheduler != nil {
		redrawScheduler.ScheduleRedraw(l)
	}
}

// --- Group ---

// Group is a positioned container of Groups and Shapes.
type Group struct {
	ContainerBase
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return newGroup(nil)
}

func newGroup(attrs *Attributes) *Group {
	g := &Group{}
	g.initContainer(g, NodeTypeGroup, attrs, isGroupOrShape)
	return g
}
