package canopy

// Factory is the per-type schema and constructor used by the Deserializer.
type Factory interface {
	// TypeName is the document type tag this factory builds.
	TypeName() string
	// Attribute returns the declared attribute with the given property name.
	Attribute(property string) (*Attribute, bool)
	// AttributeSheet returns every declared attribute in declaration order.
	AttributeSheet() []SheetEntry
	// RequiredAttributes returns the required attributes in declaration order.
	RequiredAttributes() []*Attribute
	// Create builds the node from a fragment whose attributes were already
	// validated. It does not attach children.
	Create(doc Document, ctx *ValidationContext) (Node, error)
}

// ContainerFactory is a Factory for container nodes.
type ContainerFactory interface {
	Factory
	// IsValidForContainer reports whether n may be attached to c.
	IsValidForContainer(c Container, n Node) bool
}

// PostProcessor is implemented by factories that need deferred work after
// a node is constructed and, for containers, after its children are
// attached. It runs at most once per successfully constructed node.
type PostProcessor interface {
	PostProcess(n Node, ctx *ValidationContext) error
}

// SheetEntry is one row of a factory's attribute sheet.
type SheetEntry struct {
	Attribute *Attribute
	Required  bool
}

// AbstractFactory is the Factory implementation the built-in factories are
// made of: an ordered attribute sheet plus a constructor.
type AbstractFactory struct {
	typeName string
	order    []*Attribute
	required map[string]bool
	build    func(attrs *Attributes) Node
}

// NewAbstractFactory returns a factory with an empty sheet. build receives
// a fresh store holding the fragment's attributes.
func NewAbstractFactory(typeName string, build func(attrs *Attributes) Node) *AbstractFactory {
	return &AbstractFactory{
		typeName: typeName,
		required: make(map[string]bool),
		build:    build,
	}
}

// TypeName returns the type tag.
func (f *AbstractFactory) TypeName() string { return f.typeName }

// AddAttribute declares attr, or updates its required flag if it is already
// declared. The declaration position of an existing attribute is kept.
func (f *AbstractFactory) AddAttribute(attr *Attribute, required bool) *AbstractFactory {
	if attr == nil {
		panic("canopy: cannot add nil attribute")
	}
	if _, ok := f.required[attr.property]; !ok {
		f.order = append(f.order, attr)
	}
	f.required[attr.property] = required
	return f
}

// AddAttributes declares each attr as optional.
func (f *AbstractFactory) AddAttributes(attrs ...*Attribute) *AbstractFactory {
	for _, a := range attrs {
		f.AddAttribute(a, false)
	}
	return f
}

// Attribute returns the declared attribute with the given property name.
func (f *AbstractFactory) Attribute(property string) (*Attribute, bool) {
	if _, ok := f.required[property]; !ok {
		return nil, false
	}
	for _, a := range f.order {
		if a.property == property {
			return a, true
		}
	}
	return nil, false
}

// IsRequired reports whether attr is declared and required.
func (f *AbstractFactory) IsRequired(attr *Attribute) bool {
	return f.required[attr.property]
}

// AttributeSheet returns a snapshot of the declared attributes.
func (f *AbstractFactory) AttributeSheet() []SheetEntry {
	out := make([]SheetEntry, len(f.order))
	for i, a := range f.order {
		out[i] = SheetEntry{Attribute: a, Required: f.required[a.property]}
	}
	return out
}

// RequiredAttributes returns a snapshot of the required attributes.
func (f *AbstractFactory) RequiredAttributes() []*Attribute {
	var out []*Attribute
	for _, a := range f.order {
		if f.required[a.property] {
			out = append(out, a)
		}
	}
	return out
}

// Create installs the fragment's attributes into a fresh store and builds
// the node.
func (f *AbstractFactory) Create(doc Document, _ *ValidationContext) (Node, error) {
	return f.build(newAttributesFrom(doc.AttributeMap())), nil
}

// NewNodeFactory returns a factory preset with the attributes every node
// has: ID, NAME, VISIBLE, LISTENING and TRANSFORM.
func NewNodeFactory(typeName string, build func(attrs *Attributes) Node) *AbstractFactory {
	return NewAbstractFactory(typeName, build).AddAttributes(
		AttrID, AttrName, AttrVisible, AttrListening, AttrTransform,
	)
}

// NewShapeFactory returns a node factory preset with the positioning,
// paint, line, drag and shadow attributes every shape has.
func NewShapeFactory(t ShapeType, build func(attrs *Attributes) Node) *AbstractFactory {
	return NewNodeFactory(t.String(), build).AddAttributes(
		AttrX, AttrY, AttrAlpha,
		AttrFill, AttrStrokeColor, AttrStrokeWidth,
		AttrLineJoin, AttrLineCap, AttrDashArray,
		AttrDraggable, AttrDragConstraint, AttrDragBounds,
		AttrShadow,
		AttrScale, AttrShear, AttrRotation, AttrOffset,
	)
}

// ContainerNodeFactory is a node factory that also declares which children
// its containers accept.
type ContainerNodeFactory struct {
	*AbstractFactory
}

// NewContainerFactory returns a node factory for a container type.
func NewContainerFactory(typeName string, build func(attrs *Attributes) Container) *ContainerNodeFactory {
	return &ContainerNodeFactory{
		AbstractFactory: NewNodeFactory(typeName, func(attrs *Attributes) Node {
			return build(attrs)
		}),
	}
}

// AddAttribute declares attr on the container factory.
func (f *ContainerNodeFactory) AddAttribute(attr *Attribute, required bool) *ContainerNodeFactory {
	f.AbstractFactory.AddAttribute(attr, required)
	return f
}

// AddAttributes declares each attr as optional.
func (f *ContainerNodeFactory) AddAttributes(attrs ...*Attribute) *ContainerNodeFactory {
	f.AbstractFactory.AddAttributes(attrs...)
	return f
}

// IsValidForContainer reports whether c accepts n as a child.
func (f *ContainerNodeFactory) IsValidForContainer(c Container, n Node) bool {
	return c.AcceptsChild(n)
}
