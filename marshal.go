package cdif

import "reflect"

// Marshal returns the Field representation of v, using the converter
// [DefaultRegistry] associates with v's dynamic type.
//
// Marshal fails with a [ConverterNotFoundError] if no converter is
// available for the type, or with whatever error the converter
// returns, typically a [ValidationError].
func Marshal(v any) (Field, error) {
	return DefaultRegistry.Marshal(v)
}

// Marshal is like the package level [Marshal], but uses r.
func (r *Registry) Marshal(v any) (Field, error) {
	if v == nil {
		return Field{}, ConverterNotFoundError{"untyped nil"}
	}
	val := reflect.ValueOf(v)
	c, err := r.lookup(val.Type())
	if err != nil {
		return Field{}, err
	}
	return c.marshal(val)
}

// MustMarshal is like [Marshal], but panics on error.
func MustMarshal(v any) Field {
	f, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return f
}
