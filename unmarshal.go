package cdif

import (
	"errors"
	"reflect"
)

// Unmarshal returns the native T represented by f, using the
// converter [DefaultRegistry] associates with T.
//
// Unmarshal fails with a [ConverterNotFoundError] if no converter is
// available for T. Otherwise, errors come from the converter, and are
// typically one of [FieldNotFoundError], [TypeMismatchError],
// [UnknownEnumCaseError] or [StructureError]. On error, the zero T
// is returned.
func Unmarshal[T any](f Field) (T, error) {
	return unmarshalWith[T](DefaultRegistry, f)
}

// UnmarshalFrom is like [Unmarshal], but uses r.
func UnmarshalFrom[T any](r *Registry, f Field) (T, error) {
	return unmarshalWith[T](r, f)
}

func unmarshalWith[T any](r *Registry, f Field) (T, error) {
	var zero T
	v, err := r.unmarshal(reflect.TypeFor[T](), f)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// UnmarshalType returns the value of type t represented by f, using
// [DefaultRegistry].
func UnmarshalType(t reflect.Type, f Field) (any, error) {
	return DefaultRegistry.Unmarshal(t, f)
}

// Unmarshal returns the value of type t represented by f.
func (r *Registry) Unmarshal(t reflect.Type, f Field) (any, error) {
	v, err := r.unmarshal(t, f)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// UnmarshalInto stores the value represented by f in the value
// pointed to by ptr. ptr is left untouched if unmarshaling fails.
func (r *Registry) UnmarshalInto(f Field, ptr any) error {
	if ptr == nil {
		return errors.New("can't unmarshal into nil interface")
	}
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Pointer {
		return errors.New("can't unmarshal into a non-pointer")
	}
	if val.IsNil() {
		return errors.New("can't unmarshal into a nil pointer")
	}
	v, err := r.unmarshal(val.Type().Elem(), f)
	if err != nil {
		return err
	}
	val.Elem().Set(v)
	return nil
}

// UnmarshalInto is like [Registry.UnmarshalInto], using
// [DefaultRegistry].
func UnmarshalInto(f Field, ptr any) error {
	return DefaultRegistry.UnmarshalInto(f, ptr)
}

func (r *Registry) unmarshal(t reflect.Type, f Field) (reflect.Value, error) {
	c, err := r.lookup(t)
	if err != nil {
		return reflect.Value{}, err
	}
	if f.IsZero() {
		return reflect.Value{}, mismatch("", typeName(t), f.kind)
	}
	return c.unmarshal(f)
}
