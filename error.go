package cdif

import (
	"fmt"
	"reflect"
)

// ValidationError is the error returned when a native value cannot
// be represented as a Field of the requested kind.
type ValidationError struct {
	// Kind is the kind of Field that was being constructed.
	Kind Kind
	// Value is a rendering of the offending value.
	Value string
	// Reason is an explanation of why the value isn't representable.
	Reason string
}

func (e ValidationError) Error() string {
	if e.Kind == KindInvalid {
		return fmt.Sprintf("invalid value: %s", e.Reason)
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Kind, e.Value, e.Reason)
}

func invalid(k Kind, v any, reason string, args ...any) error {
	val := ""
	if v != nil {
		val = fmt.Sprint(v)
	}
	return ValidationError{k, val, fmt.Sprintf(reason, args...)}
}

// FieldNotFoundError is the error returned when a composite has no
// field with the requested name.
type FieldNotFoundError struct {
	// TypeID is the type identifier of the composite that was
	// searched.
	TypeID string
	// Name is the field name that was not found.
	Name string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("composite %s has no field %q", e.TypeID, e.Name)
}

// TypeMismatchError is the error returned when a Field's kind doesn't
// match the kind an extraction requires.
type TypeMismatchError struct {
	// Name is the composite field name being read, if any.
	Name string
	// Want describes the expected kind.
	Want string
	// Got is the actual kind of the Field.
	Got Kind
}

func (e TypeMismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("type mismatch for field %q: want %s, got %s", e.Name, e.Want, e.Got)
}

func mismatch(name string, want any, got Kind) error {
	return TypeMismatchError{name, fmt.Sprint(want), got}
}

// UnknownEnumCaseError is the error returned when an enum raw value
// has no corresponding native case, or names a case other than the
// one its raw value selects.
type UnknownEnumCaseError struct {
	// TypeID is the enum's type identifier.
	TypeID string
	// Raw is the unrecognized raw value.
	Raw string
	// Case is the case name carried by the Field, if any.
	Case string
}

func (e UnknownEnumCaseError) Error() string {
	if e.Case != "" {
		return fmt.Sprintf("enum %s has no case %s with raw value %s", e.TypeID, e.Case, e.Raw)
	}
	return fmt.Sprintf("enum %s has no case with raw value %s", e.TypeID, e.Raw)
}

// StructureError is the error returned when a composite's type
// identifier doesn't match the type a converter expects.
type StructureError struct {
	Want string
	Got  string
}

func (e StructureError) Error() string {
	return fmt.Sprintf("composite type %q does not match expected type %q", e.Got, e.Want)
}

// ConverterNotFoundError is the error returned when no converter is
// available for a native type.
type ConverterNotFoundError struct {
	// Type is the name of the native type.
	Type string
}

func (e ConverterNotFoundError) Error() string {
	return fmt.Sprintf("no converter registered for %s", e.Type)
}

// ConflictError is the error returned when registering a converter
// for a type that already has one.
type ConflictError struct {
	// Type is the name of the native type.
	Type string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("converter for %s already registered", e.Type)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
