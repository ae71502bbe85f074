// Package canopy is a retained-mode 2D scene graph with a validated document
// format.
//
// Canopy provides the node tree, attribute store, transform hierarchy and
// document deserializer that sit underneath a canvas-style renderer. Drawing
// goes through the [Context2D] interface; the ebitenrender subpackage
// implements it for [Ebitengine].
//
// # Scene graph
//
// Every element is a [Node]. Trees are rooted at a [Viewport], which holds
// [Scene] nodes, which hold [Layer] nodes. Layers and [Group] nodes hold
// groups and shapes:
//
//	v := canopy.NewViewport(800, 600)
//	scene := canopy.NewScene()
//	layer := canopy.NewLayer()
//	v.Add(scene)
//	scene.Add(layer)
//
//	c := canopy.NewCircle(20)
//	c.Attributes().SetX(100)
//	c.Attributes().SetFillColor("tomato")
//	layer.Add(c)
//
// Adding a child a container does not accept, adding nil or creating a cycle
// panics. Children draw in insertion order; use [ContainerBase.MoveToTop] and
// friends to change z-order.
//
// # Attributes
//
// Node properties live in an open [Attributes] store keyed by property name.
// Typed getters never fail: absent or mistyped values read as the getter's
// default. Library-wide defaults come from [Defaults], which can be loaded
// from TOML with [LoadDefaults].
//
// # Documents
//
// A tree serializes to a generic document of type, attributes and children.
// [Parse] reads JSON or YAML, validates it against the registered factories
// and builds the tree:
//
//	n, err := canopy.Parse(data, canopy.NewValidationContext())
//
// A [ValidationContext] in fail-fast mode stops at the first violation. In
// collect-all mode the deserializer skips offending attributes and children
// and reports every violation with its document path, for example
// ".children[0].attributes.radius". Custom node types register a [Factory]
// on a [FactoryRegistry].
//
// # Transforms
//
// A node's [Transform] combines its position, rotation, scale, shear and
// offset, unless an explicit transform attribute overrides them.
// [SolveTransform] finds the affine transform mapping three points onto
// three others, and [ViewportTransform] fits a world rectangle into a
// viewport.
//
// [Ebitengine]: https://ebitengine.org
package canopy
