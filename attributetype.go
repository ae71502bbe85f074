package canopy

// AttributeType is a named validator for raw attribute values. Validate
// records failures through ctx and returns only the abort signal produced
// by a fail-fast context. Implementations must be stateless.
type AttributeType interface {
	Name() string
	Validate(value any, ctx *ValidationContext) error
}

// Built-in attribute types.
var (
	StringType  AttributeType = primitiveType{name: "String", kind: ValueString}
	NumberType  AttributeType = primitiveType{name: "Number", kind: ValueNumber}
	BooleanType AttributeType = primitiveType{name: "Boolean", kind: ValueBoolean}
	ColorType   AttributeType = colorType{}

	TransformType AttributeType = transformType{}

	Point2DType = NewObjectType("Point2D",
		ObjectField{Name: "x", Type: NumberType, Required: true},
		ObjectField{Name: "y", Type: NumberType, Required: true},
	)
	Point2DArrayType = NewArrayType("Point2DArray", Point2DType)
	NumberArrayType  = NewArrayType("NumberArray", NumberType)

	LineJoinType       = NewEnumType("LineJoin", "miter", "round", "bevel")
	LineCapType        = NewEnumType("LineCap", "butt", "round", "square")
	TextAlignType      = NewEnumType("TextAlign", "start", "end", "left", "center", "right")
	TextBaselineType   = NewEnumType("TextBaseline", "alphabetic", "top", "hanging", "middle", "ideographic", "bottom")
	DragConstraintType = NewEnumType("DragConstraint", "none", "horizontal", "vertical")
	PatternRepeatType  = NewEnumType("PatternRepeat", "repeat", "repeat-x", "repeat-y", "no-repeat")

	colorStopType = NewObjectType("ColorStop",
		ObjectField{Name: "position", Type: NumberType, Required: true},
		ObjectField{Name: "color", Type: ColorType, Required: true},
	)
	colorStopArrayType = NewArrayType("ColorStopArray", colorStopType)
	radialPointType    = NewObjectType("RadialPoint",
		ObjectField{Name: "x", Type: NumberType, Required: true},
		ObjectField{Name: "y", Type: NumberType, Required: true},
		ObjectField{Name: "radius", Type: NumberType, Required: true},
	)

	LinearGradientType = NewObjectType("LinearGradient",
		ObjectField{Name: "type", Type: FixedValue("LinearGradient"), Required: true},
		ObjectField{Name: "start", Type: Point2DType, Required: true},
		ObjectField{Name: "end", Type: Point2DType, Required: true},
		ObjectField{Name: "colorStops", Type: colorStopArrayType, Required: true},
	)
	RadialGradientType = NewObjectType("RadialGradient",
		ObjectField{Name: "type", Type: FixedValue("RadialGradient"), Required: true},
		ObjectField{Name: "start", Type: radialPointType, Required: true},
		ObjectField{Name: "end", Type: radialPointType, Required: true},
		ObjectField{Name: "colorStops", Type: colorStopArrayType, Required: true},
	)
	PatternGradientType = NewObjectType("PatternGradient",
		ObjectField{Name: "type", Type: FixedValue("PatternGradient"), Required: true},
		ObjectField{Name: "url", Type: StringType, Required: true},
		ObjectField{Name: "repeat", Type: PatternRepeatType},
	)
	ShadowType = NewObjectType("Shadow",
		ObjectField{Name: "color", Type: ColorType, Required: true},
		ObjectField{Name: "blur", Type: NumberType},
		ObjectField{Name: "offset", Type: Point2DType},
		ObjectField{Name: "onFill", Type: BooleanType},
	)
	DragBoundsType = NewObjectType("DragBounds",
		ObjectField{Name: "x1", Type: NumberType},
		ObjectField{Name: "y1", Type: NumberType},
		ObjectField{Name: "x2", Type: NumberType},
		ObjectField{Name: "y2", Type: NumberType},
	)

	// FillType accepts a color string or any of the gradient objects.
	FillType = NewMultiAttributeType("FillType",
		ColorType, LinearGradientType, RadialGradientType, PatternGradientType)
)

type primitiveType struct {
	name string
	kind ValueType
}

func (t primitiveType) Name() string { return t.name }

func (t primitiveType) Validate(v any, ctx *ValidationContext) error {
	if typeOfValue(v) != t.kind {
		return ctx.AddBadTypeError(t.kind)
	}
	return nil
}

type colorType struct{}

func (colorType) Name() string { return "Color" }

func (t colorType) Validate(v any, ctx *ValidationContext) error {
	s, ok := v.(string)
	if !ok {
		return ctx.AddBadTypeError(ValueString)
	}
	if _, err := ParseColor(s); err != nil {
		return ctx.AddBadValueError(t.Name(), v)
	}
	return nil
}

// transformType accepts the 6-element matrix array [m00,m10,m01,m11,m02,m12].
type transformType struct{}

func (transformType) Name() string { return "Transform" }

func (transformType) Validate(v any, ctx *ValidationContext) error {
	arr, ok := v.([]any)
	if !ok {
		return ctx.AddBadTypeError(ValueArray)
	}
	if len(arr) != 6 {
		return ctx.AddBadArraySizeError(6, len(arr))
	}
	for i, e := range arr {
		if typeOfValue(e) == ValueNumber {
			continue
		}
		ctx.PushIndex(i)
		err := ctx.AddBadTypeError(ValueNumber)
		ctx.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

type enumType struct {
	name   string
	values []string
}

// NewEnumType returns a type accepting exactly one of the given strings.
func NewEnumType(name string, values ...string) AttributeType {
	return enumType{name: name, values: values}
}

func (t enumType) Name() string { return t.name }

func (t enumType) Validate(v any, ctx *ValidationContext) error {
	s, ok := v.(string)
	if !ok {
		return ctx.AddBadTypeError(ValueString)
	}
	for _, allowed := range t.values {
		if s == allowed {
			return nil
		}
	}
	return ctx.AddBadValueError(t.name, v)
}

type fixedType struct {
	value string
}

// FixedValue returns a type accepting only the string value. Object types use
// it for their "type" discriminator.
func FixedValue(value string) AttributeType {
	return fixedType{value: value}
}

func (t fixedType) Name() string { return "Fixed(" + t.value + ")" }

func (t fixedType) Validate(v any, ctx *ValidationContext) error {
	if s, ok := v.(string); ok && s == t.value {
		return nil
	}
	return ctx.AddFixedValueError(t.value)
}

type arrayType struct {
	name string
	elem AttributeType
}

// NewArrayType returns a type accepting arrays whose every element is
// accepted by elem.
func NewArrayType(name string, elem AttributeType) AttributeType {
	return arrayType{name: name, elem: elem}
}

func (t arrayType) Name() string { return t.name }

func (t arrayType) Validate(v any, ctx *ValidationContext) error {
	arr, ok := v.([]any)
	if !ok {
		return ctx.AddBadTypeError(ValueArray)
	}
	for i, e := range arr {
		ctx.PushIndex(i)
		err := t.elem.Validate(e, ctx)
		ctx.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// ObjectField declares one member of an object type.
type ObjectField struct {
	Name     string
	Type     AttributeType
	Required bool
}

type objectType struct {
	name   string
	fields []ObjectField
}

// NewObjectType returns a type accepting objects with the given members.
// Undeclared members are rejected.
func NewObjectType(name string, fields ...ObjectField) AttributeType {
	return objectType{name: name, fields: fields}
}

func (t objectType) Name() string { return t.name }

func (t objectType) field(name string) (ObjectField, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return ObjectField{}, false
}

func (t objectType) Validate(v any, ctx *ValidationContext) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return ctx.AddBadTypeError(ValueObject)
	}
	for _, f := range t.fields {
		if !f.Required || obj[f.Name] != nil {
			continue
		}
		ctx.Push(f.Name)
		err := ctx.AddRequiredError()
		ctx.Pop()
		if err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(obj) {
		val := obj[key]
		f, known := t.field(key)
		if known && val == nil {
			continue
		}
		ctx.Push(key)
		var err error
		if !known {
			err = ctx.AddInvalidAttributeError(t.name)
		} else {
			err = f.Type.Validate(val, ctx)
		}
		ctx.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// MultiAttributeType is a union: a value is valid if any member accepts it.
// Members are tried in declaration order. When every member rejects the
// value a single InvalidValueForType error is recorded; member diagnostics
// are not surfaced.
type MultiAttributeType struct {
	name    string
	members []AttributeType
}

// NewMultiAttributeType returns the union of members.
func NewMultiAttributeType(name string, members ...AttributeType) *MultiAttributeType {
	return &MultiAttributeType{name: name, members: members}
}

// Name returns the union's name.
func (t *MultiAttributeType) Name() string { return t.name }

// Members returns the member types in declaration order.
func (t *MultiAttributeType) Members() []AttributeType {
	return append([]AttributeType(nil), t.members...)
}

// Validate implements AttributeType.
func (t *MultiAttributeType) Validate(v any, ctx *ValidationContext) error {
	for _, m := range t.members {
		probe := ctx.probe()
		if m.Validate(v, probe) == nil && len(probe.errors) == 0 {
			return nil
		}
	}
	return ctx.AddBadValueError(t.name, v)
}
