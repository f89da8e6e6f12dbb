package cdif

import "reflect"

// A Converter marshals and unmarshals values of native type T.
//
// Converters must be stateless, or at least safe for concurrent use:
// a registered Converter is shared by all callers for the lifetime of
// the process.
//
// UnmarshalCDIF must not return a partially populated T: on error,
// the returned T is ignored.
type Converter[T any] interface {
	MarshalCDIF(v T) (Field, error)
	UnmarshalCDIF(f Field) (T, error)
}

// Marshaler is the interface implemented by native types that can
// marshal themselves.
//
// A type T whose value implements Marshaler and whose pointer
// implements [Unmarshaler] needs no explicit registration: the
// registry associates T with its own methods at first use.
type Marshaler interface {
	MarshalCDIF() (Field, error)
}

// Unmarshaler is the interface implemented by native types that can
// unmarshal themselves. UnmarshalCDIF must have a pointer receiver.
type Unmarshaler interface {
	UnmarshalCDIF(f Field) error
}

var (
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
)

// ConverterFuncs returns a Converter that uses the given functions.
func ConverterFuncs[T any](marshal func(T) (Field, error), unmarshal func(Field) (T, error)) Converter[T] {
	return funcConverter[T]{marshal, unmarshal}
}

type funcConverter[T any] struct {
	marshal   func(T) (Field, error)
	unmarshal func(Field) (T, error)
}

func (c funcConverter[T]) MarshalCDIF(v T) (Field, error)   { return c.marshal(v) }
func (c funcConverter[T]) UnmarshalCDIF(f Field) (T, error) { return c.unmarshal(f) }

// converter is a type-erased Converter.
type converter struct {
	typ       reflect.Type
	marshal   func(v reflect.Value) (Field, error)
	unmarshal func(f Field) (reflect.Value, error)
}

func erase[T any](c Converter[T]) *converter {
	return &converter{
		typ: reflect.TypeFor[T](),
		marshal: func(v reflect.Value) (Field, error) {
			// Elements of []T and *T, with T an interface type, can be
			// nil interfaces.
			if v.Kind() == reflect.Interface && v.IsNil() {
				return Field{}, invalid(KindInvalid, nil, "nil %s value", typeName(v.Type()))
			}
			return c.MarshalCDIF(v.Interface().(T))
		},
		unmarshal: func(f Field) (reflect.Value, error) {
			v, err := c.UnmarshalCDIF(f)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		},
	}
}
