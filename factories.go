package canopy

// RegisterBuiltins registers a factory for every built-in node and shape
// type on r.
func RegisterBuiltins(r *FactoryRegistry) {
	// Containers.
	r.Register(NewContainerFactory(NodeTypeViewport.String(), func(a *Attributes) Container {
		return newViewport(a)
	}).
		AddAttribute(AttrWidth, true).
		AddAttribute(AttrHeight, true))

	r.Register(NewContainerFactory(NodeTypeScene.String(), func(a *Attributes) Container {
		return newScene(a)
	}))

	r.Register(NewContainerFactory(NodeTypeLayer.String(), func(a *Attributes) Container {
		return newLayer(a)
	}).AddAttributes(AttrAlpha, AttrClearLayerBeforeDraw, AttrZoomable))

	r.Register(NewContainerFactory(NodeTypeGroup.String(), func(a *Attributes) Container {
		return newGroup(a)
	}).AddAttributes(
		AttrX, AttrY, AttrAlpha,
		AttrRotation, AttrScale, AttrShear, AttrOffset,
		AttrDraggable, AttrDragConstraint, AttrDragBounds,
	))

	// Shapes.
	r.Register(NewShapeFactory(ShapeTypeRectangle, func(a *Attributes) Node { return newRectangle(a) }).
		AddAttribute(AttrWidth, true).
		AddAttribute(AttrHeight, true).
		AddAttribute(AttrCornerRadius, false))

	r.Register(NewShapeFactory(ShapeTypeCircle, func(a *Attributes) Node { return newCircle(a) }).
		AddAttribute(AttrRadius, true))

	r.Register(NewShapeFactory(ShapeTypeEllipse, func(a *Attributes) Node { return newEllipse(a) }).
		AddAttribute(AttrWidth, true).
		AddAttribute(AttrHeight, true))

	r.Register(NewShapeFactory(ShapeTypeLine, func(a *Attributes) Node { return newLine(a) }).
		AddAttribute(AttrPoints, true))

	r.Register(NewShapeFactory(ShapeTypePolyLine, func(a *Attributes) Node { return newPolyLine(a) }).
		AddAttribute(AttrPoints, true))

	r.Register(NewShapeFactory(ShapeTypePolygon, func(a *Attributes) Node { return newPolygon(a) }).
		AddAttribute(AttrPoints, true))

	r.Register(NewShapeFactory(ShapeTypeRegularPolygon, func(a *Attributes) Node { return newRegularPolygon(a) }).
		AddAttribute(AttrSides, true).
		AddAttribute(AttrRadius, true))

	r.Register(NewShapeFactory(ShapeTypeStar, func(a *Attributes) Node { return newStar(a) }).
		AddAttribute(AttrStarPoints, true).
		AddAttribute(AttrInnerRadius, true).
		AddAttribute(AttrOuterRadius, true))

	r.Register(NewShapeFactory(ShapeTypeArc, func(a *Attributes) Node { return newArc(a) }).
		AddAttribute(AttrRadius, true).
		AddAttribute(AttrStartAngle, true).
		AddAttribute(AttrEndAngle, true).
		AddAttribute(AttrCounterClockwise, false))

	r.Register(NewShapeFactory(ShapeTypeText, func(a *Attributes) Node { return newText(a) }).
		AddAttribute(AttrText, true).
		AddAttributes(AttrFontSize, AttrFontFamily, AttrFontStyle, AttrTextAlign, AttrTextBaseline))

	r.Register(&pictureFactory{
		AbstractFactory: NewShapeFactory(ShapeTypePicture, func(a *Attributes) Node { return newPicture(a) }).
			AddAttribute(AttrURL, true).
			AddAttributes(AttrWidth, AttrHeight),
	})
}

// pictureFactory starts image loading for deserialized pictures. The load
// callback looks up the layer when it fires, by which time the picture is
// normally attached.
type pictureFactory struct {
	*AbstractFactory
}

func (f *pictureFactory) PostProcess(n Node, _ *ValidationContext) error {
	if p, ok := n.(*Picture); ok {
		p.load()
	}
	return nil
}
