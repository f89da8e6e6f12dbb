package cdif

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// A Builder constructs Field trees in a declarative block.
//
// Builder methods mirror the package level constructors, but instead
// of returning an error they record the first error encountered and
// return the zero Field. Once an error is recorded, further calls do
// nothing. This allows a whole composite to be written as a single
// expression:
//
//	f, err := cdif.Build(func(b *cdif.Builder) cdif.Field {
//		return b.Struct("TestClass",
//			cdif.Named("address", b.Address(v.Address)),
//			cdif.Named("balance", b.UFix64(v.Balance)),
//			cdif.Named("isValid", b.Bool(v.IsValid)),
//		)
//	})
type Builder struct {
	reg *Registry
	err error
}

// Build runs fn with a fresh Builder and returns the Field it
// produced, or the first error recorded by the Builder. Nested
// values passed to [Builder.Value] are marshaled with
// [DefaultRegistry].
func Build(fn func(b *Builder) Field) (Field, error) {
	return DefaultRegistry.Build(fn)
}

// Build is like the package level [Build], but marshals nested values
// with r.
func (r *Registry) Build(fn func(b *Builder) Field) (Field, error) {
	b := &Builder{reg: r}
	ret := fn(b)
	if b.err != nil {
		return Field{}, b.err
	}
	if ret.IsZero() {
		return Field{}, invalid(KindInvalid, nil, "builder produced no Field")
	}
	return ret, nil
}

// Err returns the first error recorded by the Builder.
func (b *Builder) Err() error { return b.err }

// Fail records err, unless an error is already recorded.
func (b *Builder) Fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// Try records err if non-nil, and otherwise returns f. It adapts
// fallible constructors to the Builder.
func (b *Builder) Try(f Field, err error) Field {
	if b.err != nil {
		return Field{}
	}
	if err != nil {
		b.err = err
		return Field{}
	}
	return f
}

func (b *Builder) ok() bool { return b.err == nil }

// Void returns a Void Field.
func (b *Builder) Void() Field { return Void() }

// Bool returns a Bool Field.
func (b *Builder) Bool(v bool) Field { return Bool(v) }

// String returns a String Field.
func (b *Builder) String(v string) Field { return String(v) }

// Bytes returns a Bytes Field.
func (b *Builder) Bytes(v []byte) Field { return Bytes(v) }

// Address returns an Address Field.
func (b *Builder) Address(a Address) Field { return NewAddress(a) }

// AddressHex returns an Address Field parsed from hex.
func (b *Builder) AddressHex(s string) Field {
	if !b.ok() {
		return Field{}
	}
	a, err := ParseAddress(s)
	if err != nil {
		b.err = err
		return Field{}
	}
	return NewAddress(a)
}

// Int returns an integer Field of kind k.
func (b *Builder) Int(k Kind, v *big.Int) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewInt(k, v))
}

// UFix64 returns an unsigned fixed-point Field.
func (b *Builder) UFix64(d decimal.Decimal) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(UFix64(d))
}

// Fix64 returns a signed fixed-point Field.
func (b *Builder) Fix64(d decimal.Decimal) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(Fix64(d))
}

// Path returns a Path Field.
func (b *Builder) Path(domain, identifier string) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewPath(Path{domain, identifier}))
}

// Capability returns a Capability Field.
func (b *Builder) Capability(c Capability) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewCapability(c))
}

// Enum returns an Enum Field.
func (b *Builder) Enum(typeID string, raw Field, caseName string) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewEnum(typeID, raw, caseName))
}

// Some returns an Optional Field wrapping v.
func (b *Builder) Some(v Field) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(Some(v))
}

// None returns an empty Optional Field.
func (b *Builder) None() Field { return None() }

// Array returns an Array Field.
func (b *Builder) Array(elems ...Field) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(Array(elems...))
}

// Dictionary returns a Dictionary Field.
func (b *Builder) Dictionary(entries ...Entry) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(Dictionary(entries...))
}

// Composite returns a composite Field of kind k.
func (b *Builder) Composite(k Kind, typeID string, pairs ...Pair) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewComposite(k, typeID, pairs...))
}

// Struct returns a Struct Field.
func (b *Builder) Struct(typeID string, pairs ...Pair) Field {
	return b.Composite(KindStruct, typeID, pairs...)
}

// Resource returns a Resource Field.
func (b *Builder) Resource(typeID string, pairs ...Pair) Field {
	return b.Composite(KindResource, typeID, pairs...)
}

// Event returns an Event Field.
func (b *Builder) Event(typeID string, pairs ...Pair) Field {
	return b.Composite(KindEvent, typeID, pairs...)
}

// Contract returns a Contract Field.
func (b *Builder) Contract(typeID string, pairs ...Pair) Field {
	return b.Composite(KindContract, typeID, pairs...)
}

// Value marshals v with the Builder's registry.
func (b *Builder) Value(v any) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(b.reg.Marshal(v))
}

// BuildInt returns an integer Field of kind k holding v.
func BuildInt[T Integer](b *Builder, k Kind, v T) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(NewInteger(k, v))
}

// BuildSlice returns an Array Field of vs, each element marshaled
// with the Builder's registry.
func BuildSlice[T any](b *Builder, vs []T) Field {
	if !b.ok() {
		return Field{}
	}
	elems := make([]Field, 0, len(vs))
	for _, v := range vs {
		f := b.Value(v)
		if !b.ok() {
			return Field{}
		}
		elems = append(elems, f)
	}
	return b.Array(elems...)
}

// BuildOptional returns an Optional Field: empty if v is nil, and
// otherwise wrapping *v marshaled with the Builder's registry.
func BuildOptional[T any](b *Builder, v *T) Field {
	if !b.ok() {
		return Field{}
	}
	if v == nil {
		return None()
	}
	return b.Some(b.Value(*v))
}
