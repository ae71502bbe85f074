package canopy

// Node is the fundamental scene graph element. Every node owns an Attributes
// store and holds a non-owning reference to at most one parent container.
//
// Layer, Scene and Viewport walk the parent chain on every call and so
// always reflect the current tree shape.
//
// Node implementations embed NodeBase, ShapeBase or ContainerBase.
type Node interface {
	NodeType() NodeType
	// TypeName is the document type tag resolved through the
	// FactoryRegistry.
	TypeName() string
	Attributes() *Attributes
	Parent() Container

	Layer() *Layer
	Scene() *Scene
	Viewport() *Viewport

	CombinedTransform() Transform
	AbsoluteTransform() Transform
	LocalToWorld(p Point2D) Point2D
	WorldToLocal(p Point2D) (Point2D, error)

	RemoveFromParent()
	Draw(ctx Context2D, alpha float64)

	base() *NodeBase
}

// NodeBase implements the parts of Node shared by every node type.
type NodeBase struct {
	self   Node
	typ    NodeType
	attrs  *Attributes
	parent Container
}

// initNode wires the embedding node. attrs may be nil for an empty store.
func (n *NodeBase) initNode(self Node, typ NodeType, attrs *Attributes) {
	if attrs == nil {
		attrs = NewAttributes()
	}
	n.self = self
	n.typ = typ
	n.attrs = attrs
}

func (n *NodeBase) base() *NodeBase { return n }

// NodeType returns the node's structural tag.
func (n *NodeBase) NodeType() NodeType { return n.typ }

// TypeName returns the node type name.
func (n *NodeBase) TypeName() string { return n.typ.String() }

// Attributes returns the node's attribute store.
func (n *NodeBase) Attributes() *Attributes { return n.attrs }

// Parent returns the containing node, or nil.
func (n *NodeBase) Parent() Container { return n.parent }

// Layer returns the nearest enclosing Layer, or nil.
func (n *NodeBase) Layer() *Layer {
	if n.parent == nil {
		return nil
	}
	return n.parent.Layer()
}

// Scene returns the nearest enclosing Scene, or nil.
func (n *NodeBase) Scene() *Scene {
	if n.parent == nil {
		return nil
	}
	return n.parent.Scene()
}

// Viewport returns the enclosing Viewport, or nil.
func (n *NodeBase) Viewport() *Viewport {
	if n.parent == nil {
		return nil
	}
	return n.parent.Viewport()
}

// ID is shorthand for Attributes().ID().
func (n *NodeBase) ID() string { return n.attrs.ID() }

// Name is shorthand for Attributes().Name().
func (n *NodeBase) Name() string { return n.attrs.Name() }

// CombinedTransform returns the node's local matrix built from its
// positioning attributes.
func (n *NodeBase) CombinedTransform() Transform {
	return combinedTransform(n.attrs)
}

// AbsoluteTransform composes the combined transforms of every ancestor and
// the node itself, root first.
func (n *NodeBase) AbsoluteTransform() Transform {
	return absoluteTransform(n.self)
}

// LocalToWorld converts a point in this node's space to root space.
func (n *NodeBase) LocalToWorld(p Point2D) Point2D {
	xfrm := n.self.AbsoluteTransform()
	return xfrm.Apply(p)
}

// WorldToLocal converts a root-space point to this node's space. It fails
// when the absolute transform is degenerate.
func (n *NodeBase) WorldToLocal(p Point2D) (Point2D, error) {
	xfrm := n.self.AbsoluteTransform()
	inv, err := xfrm.Inverse()
	if err != nil {
		return Point2D{}, err
	}
	return inv.Apply(p), nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *NodeBase) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.Remove(n.self)
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node Node) bool {
	for p := node; p != nil; p = parentNode(p) {
		if p == candidate {
			return true
		}
	}
	return false
}

// Walk calls fn for n and its descendants in paint order, parents first.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}
