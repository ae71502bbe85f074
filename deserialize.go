package canopy

import (
	"github.com/charmbracelet/log"
)

// Deserializer turns documents into node trees using a FactoryRegistry.
//
// Each fragment goes through type resolution, attribute validation,
// construction, child resolution and post-processing. A fail-fast context
// aborts on the first violation and Deserialize returns (nil, err). A
// collect-all context keeps going, skipping offending attributes and
// children, and returns the best-effort tree with the violations left in
// the context. Children a container does not accept are dropped without a
// violation, and their post-process hook never runs. An accepted child is
// post-processed once it is attached to its parent.
type Deserializer struct {
	registry *FactoryRegistry
	logger   *log.Logger
}

// NewDeserializer returns a deserializer over r. A nil registry means
// DefaultRegistry.
func NewDeserializer(r *FactoryRegistry) *Deserializer {
	if r == nil {
		r = DefaultRegistry()
	}
	return &Deserializer{registry: r}
}

// WithLogger sets the logger for diagnostics. The package logger is used
// otherwise.
func (d *Deserializer) WithLogger(l *log.Logger) *Deserializer {
	d.logger = l
	return d
}

// Registry returns the registry used for type resolution.
func (d *Deserializer) Registry() *FactoryRegistry { return d.registry }

// Logger returns the logger diagnostics go to.
func (d *Deserializer) Logger() *log.Logger {
	if d.logger != nil {
		return d.logger
	}
	return logger
}

// Deserialize builds a node tree from doc, which may be a Document or any
// decoded generic value. A nil ctx means NewValidationContext().
//
// In collect-all mode the result may be nil if the root fragment itself
// could not be built; the reasons are in ctx.
func (d *Deserializer) Deserialize(doc any, ctx *ValidationContext) (Node, error) {
	if ctx == nil {
		ctx = NewValidationContext()
	}
	n, err := d.fragment(doc, ctx)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Parse decodes data as JSON or YAML and deserializes it.
func (d *Deserializer) Parse(data []byte, ctx *ValidationContext) (Node, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return d.Deserialize(doc, ctx)
}

func (d *Deserializer) fragment(v any, ctx *ValidationContext) (Node, error) {
	node, f, err := d.build(v, ctx)
	if node == nil {
		return nil, err
	}
	if err := d.postProcess(f, node, ctx); err != nil {
		return nil, err
	}
	return node, nil
}

// build constructs a fragment and its children without post-processing it,
// so the caller can skip the hook for nodes that never join the tree.
func (d *Deserializer) build(v any, ctx *ValidationContext) (Node, Factory, error) {
	doc, ok := asDocument(v)
	if !ok {
		return nil, nil, ctx.AddBadTypeError(ValueObject)
	}

	f, err := d.resolveType(doc, ctx)
	if f == nil {
		return nil, nil, err
	}
	d.Logger().Debug("resolved type", "path", ctx.Path(), "type", f.TypeName())

	attrs := doc.AttributeMap()
	if ctx.IsValidate() {
		if attrs, err = d.validateAttributes(f, doc, ctx); err != nil {
			return nil, nil, err
		}
	}

	node, err := f.Create(Document{keyType: f.TypeName(), keyAttributes: attrs}, ctx)
	if err != nil || node == nil {
		return nil, nil, err
	}

	if c, ok := node.(Container); ok {
		if err := d.resolveChildren(f, c, doc, ctx); err != nil {
			return nil, nil, err
		}
	}
	return node, f, nil
}

func (d *Deserializer) postProcess(f Factory, node Node, ctx *ValidationContext) error {
	pp, ok := f.(PostProcessor)
	if !ok {
		return nil
	}
	d.Logger().Debug("post-processing", "path", ctx.Path(), "type", f.TypeName())
	return pp.PostProcess(node, ctx)
}

// resolveType returns the factory for the fragment's type tag. A nil
// factory means the fragment cannot be built.
func (d *Deserializer) resolveType(doc Document, ctx *ValidationContext) (Factory, error) {
	ctx.Push(keyType)
	defer ctx.Pop()

	raw, ok := doc[keyType]
	if !ok || raw == nil {
		return nil, ctx.AddRequiredError()
	}
	tag, ok := raw.(string)
	if !ok {
		return nil, ctx.AddBadTypeError(ValueString)
	}
	f, ok := d.registry.Lookup(tag)
	if !ok {
		return nil, ctx.AddMissingFactoryError(tag)
	}
	return f, nil
}

// validateAttributes checks required attributes, rejects undeclared keys
// and validates the rest. It returns the attributes that passed.
func (d *Deserializer) validateAttributes(f Factory, doc Document, ctx *ValidationContext) (map[string]any, error) {
	ctx.Push(keyAttributes)
	defer ctx.Pop()

	var in map[string]any
	if raw, ok := doc[keyAttributes]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			if err := ctx.AddBadTypeError(ValueObject); err != nil {
				return nil, err
			}
		}
		in = m
	}

	for _, attr := range f.RequiredAttributes() {
		if typeOfValue(in[attr.property]) != ValueUndefined {
			continue
		}
		ctx.Push(attr.property)
		err := ctx.AddRequiredError()
		ctx.Pop()
		if err != nil {
			return nil, err
		}
	}

	out := make(map[string]any, len(in))
	for _, key := range sortedKeys(in) {
		v := in[key]
		if v == nil {
			continue
		}
		ctx.Push(key)
		before := len(ctx.errors)
		var err error
		if attr, ok := f.Attribute(key); ok {
			err = attr.typ.Validate(v, ctx)
		} else {
			err = ctx.AddInvalidAttributeError(f.TypeName())
		}
		ctx.Pop()
		if err != nil {
			return nil, err
		}
		if len(ctx.errors) == before {
			out[key] = v
		}
	}
	return out, nil
}

func (d *Deserializer) resolveChildren(f Factory, c Container, doc Document, ctx *ValidationContext) error {
	raw, ok := doc[keyChildren]
	if !ok || raw == nil {
		return nil
	}
	ctx.Push(keyChildren)
	defer ctx.Pop()

	list, ok := raw.([]any)
	if !ok {
		if ctx.IsValidate() {
			return ctx.AddBadTypeError(ValueArray)
		}
		return nil
	}

	valid := c.AcceptsChild
	if cf, ok := f.(ContainerFactory); ok {
		valid = func(n Node) bool { return cf.IsValidForContainer(c, n) }
	}
	for i, v := range list {
		ctx.PushIndex(i)
		child, cf, err := d.build(v, ctx)
		if err != nil {
			ctx.Pop()
			return err
		}
		if child != nil && !valid(child) {
			d.Logger().Debug("dropping child not valid for container",
				"path", ctx.Path(), "container", c.TypeName(), "child", child.TypeName())
			child = nil
		}
		if child != nil {
			c.Add(child)
			if err := d.postProcess(cf, child, ctx); err != nil {
				ctx.Pop()
				return err
			}
		}
		ctx.Pop()
	}
	return nil
}

// Deserialize builds a node tree with the default registry.
func Deserialize(doc any, ctx *ValidationContext) (Node, error) {
	return NewDeserializer(nil).Deserialize(doc, ctx)
}

// Parse decodes and deserializes data with the default registry.
func Parse(data []byte, ctx *ValidationContext) (Node, error) {
	return NewDeserializer(nil).Parse(data, ctx)
}
