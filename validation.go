package canopy

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies a validation failure recorded by a ValidationContext.
type ErrorKind uint8

const (
	ErrRequiredAttributeMissing ErrorKind = iota // a required attribute has no value
	ErrTypeMismatch                              // value has the wrong raw kind
	ErrInvalidValueForType                       // value has the right kind but is not accepted
	ErrUnknownAttributeForType                   // attribute not declared for the node type
	ErrFixedValueViolation                       // a discriminator field has the wrong value
	ErrUnregisteredTypeTag                       // no factory for the document's type tag
	ErrArraySizeMismatch                         // array has the wrong number of elements
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrRequiredAttributeMissing:
		return "RequiredAttributeMissing"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrInvalidValueForType:
		return "InvalidValueForType"
	case ErrUnknownAttributeForType:
		return "UnknownAttributeForType"
	case ErrFixedValueViolation:
		return "FixedValueViolation"
	case ErrUnregisteredTypeTag:
		return "UnregisteredTypeTag"
	case ErrArraySizeMismatch:
		return "ArraySizeMismatch"
	default:
		return "Unknown"
	}
}

// Violation is one recorded validation error and the document path at which
// it occurred.
type Violation struct {
	Kind    ErrorKind
	Message string
	Path    string
}

// Error formats the violation as "<path>: <message>".
func (v Violation) Error() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Violations is an error wrapping one or more validation errors.
type Violations []Violation

// Error returns a compact summary of the violations.
func (v Violations) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// ValidationError aborts a fail-fast deserialization pass. It carries the
// context so callers can still inspect the partial error state.
type ValidationError struct {
	Context *ValidationContext
}

// Error implements error.
func (e *ValidationError) Error() string {
	return "canopy: validation failed: " + e.Context.errors.Error()
}

// Unwrap exposes the recorded Violations to errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Context.errors
}

// ValidationContext tracks the path to the value being checked and the
// errors recorded so far. One context serves one deserialization call; it is
// not safe for concurrent use.
//
// With stopOnError set (the default) the first AddError returns a
// *ValidationError that callers propagate to abort. Otherwise AddError
// returns nil and errors accumulate for later inspection.
type ValidationContext struct {
	validate    bool
	stopOnError bool
	path        []string
	errors      Violations
}

// NewValidationContext returns a context that validates and stops on the
// first error.
func NewValidationContext() *ValidationContext {
	return &ValidationContext{validate: true, stopOnError: true}
}

// SetValidate enables or disables attribute validation. Contexts built for
// trusted internal copies disable it.
func (c *ValidationContext) SetValidate(validate bool) *ValidationContext {
	c.validate = validate
	return c
}

// SetStopOnError selects fail-fast (true) or collect-all (false) semantics.
func (c *ValidationContext) SetStopOnError(stop bool) *ValidationContext {
	c.stopOnError = stop
	return c
}

// IsValidate reports whether attribute checks run.
func (c *ValidationContext) IsValidate() bool { return c.validate }

// IsStopOnError reports whether the first error aborts.
func (c *ValidationContext) IsStopOnError() bool { return c.stopOnError }

// Push enters a named member; the path gains ".name".
func (c *ValidationContext) Push(name string) {
	c.path = append(c.path, "."+name)
}

// PushIndex enters an array element; the path gains "[i]".
func (c *ValidationContext) PushIndex(i int) {
	c.path = append(c.path, "["+strconv.Itoa(i)+"]")
}

// Pop leaves the innermost segment. Popping an empty path panics.
func (c *ValidationContext) Pop() {
	if len(c.path) == 0 {
		panic("canopy: ValidationContext.Pop on empty path")
	}
	c.path = c.path[:len(c.path)-1]
}

// Path returns the joined path to the current value, e.g.
// ".children[0].attributes.points[2]".
func (c *ValidationContext) Path() string {
	return strings.Join(c.path, "")
}

// Errors returns the errors recorded so far.
func (c *ValidationContext) Errors() Violations {
	return c.errors
}

// Err returns the recorded errors as an error, or nil if there are none.
func (c *ValidationContext) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors
}

// AddError records an error at the current path.
func (c *ValidationContext) AddError(kind ErrorKind, message string) error {
	c.errors = append(c.errors, Violation{Kind: kind, Message: message, Path: c.Path()})
	if c.stopOnError {
		return &ValidationError{Context: c}
	}
	return nil
}

// AddRequiredError records a missing required attribute or field.
func (c *ValidationContext) AddRequiredError() error {
	return c.AddError(ErrRequiredAttributeMissing, "required value is missing")
}

// AddBadTypeError records a value of the wrong raw kind.
func (c *ValidationContext) AddBadTypeError(expected ValueType) error {
	return c.AddError(ErrTypeMismatch, fmt.Sprintf("invalid type, expected %s", expected))
}

// AddBadValueError records a value the named type does not accept.
func (c *ValidationContext) AddBadValueError(typeName string, value any) error {
	return c.AddError(ErrInvalidValueForType, fmt.Sprintf("invalid value %s for type %s", describeValue(value), typeName))
}

// AddInvalidAttributeError records an attribute not declared for typeName.
func (c *ValidationContext) AddInvalidAttributeError(typeName string) error {
	return c.AddError(ErrUnknownAttributeForType, fmt.Sprintf("attribute is not valid for type %s", typeName))
}

// AddFixedValueError records a discriminator that must equal expected.
func (c *ValidationContext) AddFixedValueError(expected string) error {
	return c.AddError(ErrFixedValueViolation, fmt.Sprintf("value must be %q", expected))
}

// AddMissingFactoryError records a type tag with no registered factory.
func (c *ValidationContext) AddMissingFactoryError(tag string) error {
	return c.AddError(ErrUnregisteredTypeTag, fmt.Sprintf("no factory registered for type %q", tag))
}

// AddBadArraySizeError records an array of the wrong length.
func (c *ValidationContext) AddBadArraySizeError(expected, actual int) error {
	return c.AddError(ErrArraySizeMismatch, fmt.Sprintf("expected %d elements, got %d", expected, actual))
}

// probe returns a fail-fast scratch context positioned at the same path.
// Union types use it to try members without touching the caller's errors.
func (c *ValidationContext) probe() *ValidationContext {
	p := &ValidationContext{validate: true, stopOnError: true}
	p.path = append(p.path, c.path...)
	return p
}

func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		return "object"
	case []any:
		return fmt.Sprintf("array[%d]", len(x))
	default:
		return fmt.Sprintf("%v", x)
	}
}
