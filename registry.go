package cdif

import (
	"log"
	"reflect"
	"sync"

	"github.com/creachadair/mds/mapset"
)

// A Registry associates native types with their converters.
//
// Converters are resolved at first use and cached for the lifetime
// of the Registry. A type resolves, in order of preference, to:
//
//   - the Converter registered for it with [Register] or [RegisterIn];
//   - its own methods, if T implements [Marshaler] and *T implements
//     [Unmarshaler];
//   - for pointer types *E, a converter between nil/non-nil pointers
//     and empty/present Optionals, using E's converter;
//   - for slice types []E, a converter to Arrays, using E's converter.
//
// Lookups are lock-free. Registration is serialized, and may happen
// at any time, but a type can only be associated with a converter
// once: registering a type that is already registered or already
// resolved fails with a [ConflictError].
type Registry struct {
	mu       sync.Mutex
	resolved cache[*converter]
}

// DefaultRegistry is the Registry used by the package level
// functions. It comes preloaded with converters for the builtin
// types.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a Registry preloaded with converters for the
// builtin types: bool, string, []byte, fixed width and big integers,
// [Address], [Path], [Capability] and [Field] itself.
func NewRegistry() *Registry {
	ret := &Registry{}
	registerBuiltins(ret)
	return ret
}

const debugRegistry = false

func debugf(msg string, args ...any) {
	if !debugRegistry {
		return
	}
	log.Printf(msg, args...)
}

// Register associates T with c in [DefaultRegistry].
func Register[T any](c Converter[T]) error {
	return RegisterIn(DefaultRegistry, c)
}

// RegisterIn associates T with c in r.
func RegisterIn[T any](r *Registry, c Converter[T]) error {
	return r.register(erase(c))
}

// MustRegister is like [Register], but panics on error. It is
// intended for use in init functions.
func MustRegister[T any](c Converter[T]) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

func (r *Registry) register(c *converter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, loaded := r.resolved.Put(c.typ, c); loaded {
		return ConflictError{typeName(c.typ)}
	}
	debugf("registered converter for %s", c.typ)
	return nil
}

// Has reports whether a converter is available for t.
func (r *Registry) Has(t reflect.Type) bool {
	_, err := r.lookup(t)
	return err == nil
}

func (r *Registry) lookup(t reflect.Type) (*converter, error) {
	if c, ok := r.resolved.Get(t); ok {
		return c, nil
	}
	return r.resolve(t, mapset.New[reflect.Type]())
}

// resolve derives a converter for t and caches it. visiting holds
// the types whose resolution is in progress further up the stack,
// to cut recursion through self-referential pointer and slice types.
func (r *Registry) resolve(t reflect.Type, visiting mapset.Set[reflect.Type]) (*converter, error) {
	if t == nil {
		return nil, ConverterNotFoundError{typeName(t)}
	}
	if c, ok := r.resolved.Get(t); ok {
		return c, nil
	}
	if visiting.Has(t) {
		return r.newLazyConverter(t), nil
	}
	visiting.Add(t)
	defer visiting.Remove(t)

	debugf("resolving converter for %s", t)
	var (
		c   *converter
		err error
	)
	switch {
	case t.Implements(marshalerType) && reflect.PointerTo(t).Implements(unmarshalerType):
		c = newMethodConverter(t)
	case t.Kind() == reflect.Pointer:
		c, err = r.newOptionalConverter(t, visiting)
	case t.Kind() == reflect.Slice:
		c, err = r.newArrayConverter(t, visiting)
	default:
		err = ConverterNotFoundError{typeName(t)}
	}
	if err != nil {
		return nil, err
	}
	actual, _ := r.resolved.Put(t, c)
	return actual, nil
}

func newMethodConverter(t reflect.Type) *converter {
	return &converter{
		typ: t,
		marshal: func(v reflect.Value) (Field, error) {
			return v.Interface().(Marshaler).MarshalCDIF()
		},
		unmarshal: func(f Field) (reflect.Value, error) {
			ptr := reflect.New(t)
			if err := ptr.Interface().(Unmarshaler).UnmarshalCDIF(f); err != nil {
				return reflect.Value{}, err
			}
			return ptr.Elem(), nil
		},
	}
}

func (r *Registry) newOptionalConverter(t reflect.Type, visiting mapset.Set[reflect.Type]) (*converter, error) {
	elem, err := r.resolve(t.Elem(), visiting)
	if err != nil {
		return nil, err
	}
	return &converter{
		typ: t,
		marshal: func(v reflect.Value) (Field, error) {
			if v.IsNil() {
				return None(), nil
			}
			inner, err := elem.marshal(v.Elem())
			if err != nil {
				return Field{}, err
			}
			return Some(inner)
		},
		unmarshal: func(f Field) (reflect.Value, error) {
			if f.kind != KindOptional {
				return reflect.Value{}, mismatch("", KindOptional, f.kind)
			}
			inner, ok := f.Inner()
			if !ok {
				return reflect.Zero(t), nil
			}
			ev, err := elem.unmarshal(inner)
			if err != nil {
				return reflect.Value{}, err
			}
			ptr := reflect.New(t.Elem())
			ptr.Elem().Set(ev)
			return ptr, nil
		},
	}, nil
}

func (r *Registry) newArrayConverter(t reflect.Type, visiting mapset.Set[reflect.Type]) (*converter, error) {
	elem, err := r.resolve(t.Elem(), visiting)
	if err != nil {
		return nil, err
	}
	return &converter{
		typ: t,
		marshal: func(v reflect.Value) (Field, error) {
			elems := make([]Field, 0, v.Len())
			for i := range v.Len() {
				f, err := elem.marshal(v.Index(i))
				if err != nil {
					return Field{}, err
				}
				elems = append(elems, f)
			}
			return Array(elems...)
		},
		unmarshal: func(f Field) (reflect.Value, error) {
			if f.kind != KindArray {
				return reflect.Value{}, mismatch("", KindArray, f.kind)
			}
			ret := reflect.MakeSlice(t, 0, len(f.elems))
			for _, e := range f.elems {
				ev, err := elem.unmarshal(e)
				if err != nil {
					return reflect.Value{}, err
				}
				ret = reflect.Append(ret, ev)
			}
			return ret, nil
		},
	}, nil
}

// newLazyConverter returns a converter for t that looks up the real
// converter at call time. It stands in for t while t itself is being
// resolved.
func (r *Registry) newLazyConverter(t reflect.Type) *converter {
	return &converter{
		typ: t,
		marshal: func(v reflect.Value) (Field, error) {
			c, err := r.lookup(t)
			if err != nil {
				return Field{}, err
			}
			return c.marshal(v)
		},
		unmarshal: func(f Field) (reflect.Value, error) {
			c, err := r.lookup(t)
			if err != nil {
				return reflect.Value{}, err
			}
			return c.unmarshal(f)
		},
	}
}
