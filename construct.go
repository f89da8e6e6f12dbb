package cdif

import (
	"math/big"
	"slices"

	"github.com/creachadair/mds/mapset"
	"github.com/shopspring/decimal"
)

// Integer is the set of Go integer types that convert to and from
// integer Fields.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Void returns a Void Field.
func Void() Field { return Field{kind: KindVoid} }

// Bool returns a Bool Field.
func Bool(v bool) Field { return Field{kind: KindBool, b: v} }

// String returns a String Field.
func String(v string) Field { return Field{kind: KindString, str: v} }

// Bytes returns a Bytes Field holding a copy of bs.
func Bytes(bs []byte) Field { return Field{kind: KindBytes, str: string(bs)} }

// NewAddress returns an Address Field.
func NewAddress(a Address) Field { return Field{kind: KindAddress, addr: a} }

// NewInt returns an integer Field of kind k. v must be within the
// range of k.
func NewInt(k Kind, v *big.Int) (Field, error) {
	if err := checkInteger(k, v); err != nil {
		return Field{}, err
	}
	return Field{kind: k, num: new(big.Int).Set(v)}, nil
}

// NewInteger returns an integer Field of kind k holding v.
func NewInteger[T Integer](k Kind, v T) (Field, error) {
	return NewInt(k, toBig(v))
}

// NewFixed returns a fixed-point Field of kind k, which must be
// [KindUFix64] or [KindFix64].
//
// d must have at most [FixedPointScale] fractional digits, and must
// be within the range of k. NewFixed never rounds.
func NewFixed(k Kind, d decimal.Decimal) (Field, error) {
	if !k.IsFixedPoint() {
		return Field{}, invalid(k, d, "not a fixed-point kind")
	}
	scaled, err := scaleDecimal(k, d)
	if err != nil {
		return Field{}, err
	}
	return Field{kind: k, num: scaled}, nil
}

// UFix64 returns an unsigned fixed-point Field holding d.
func UFix64(d decimal.Decimal) (Field, error) { return NewFixed(KindUFix64, d) }

// Fix64 returns a signed fixed-point Field holding d.
func Fix64(d decimal.Decimal) (Field, error) { return NewFixed(KindFix64, d) }

// NewPath returns a Path Field.
func NewPath(p Path) (Field, error) {
	if err := p.validate(); err != nil {
		return Field{}, err
	}
	return Field{kind: KindPath, path: p}, nil
}

// NewCapability returns a Capability Field.
func NewCapability(c Capability) (Field, error) {
	if err := c.Path.validate(); err != nil {
		return Field{}, invalid(KindCapability, c, "%v", err)
	}
	return Field{kind: KindCapability, addr: c.Address, path: c.Path, str: c.BorrowType}, nil
}

// NewEnum returns an Enum Field of the given enum type, with the
// given raw value and logical case name. raw must be an integer
// Field. caseName may be empty if the case is not known.
func NewEnum(typeID string, raw Field, caseName string) (Field, error) {
	if typeID == "" {
		return Field{}, invalid(KindEnum, raw, "empty type identifier")
	}
	if !raw.kind.IsInteger() {
		return Field{}, invalid(KindEnum, raw, "raw value of %s must be an integer, got %s", typeID, raw.kind)
	}
	return Field{kind: KindEnum, str: typeID, caseName: caseName, elems: []Field{raw}}, nil
}

// Some returns an Optional Field wrapping v.
func Some(v Field) (Field, error) {
	if v.IsZero() {
		return Field{}, invalid(KindOptional, nil, "wrapped Field is missing")
	}
	return Field{kind: KindOptional, elems: []Field{v}}, nil
}

// None returns an empty Optional Field.
func None() Field { return Field{kind: KindOptional} }

// Array returns an Array Field of the given elements.
func Array(elems ...Field) (Field, error) {
	if i := slices.IndexFunc(elems, Field.IsZero); i >= 0 {
		return Field{}, invalid(KindArray, nil, "element %d is missing", i)
	}
	return Field{kind: KindArray, elems: slices.Clone(elems)}, nil
}

// Dictionary returns a Dictionary Field of the given entries, in
// the given order.
func Dictionary(entries ...Entry) (Field, error) {
	for i, e := range entries {
		if e.Key.IsZero() || e.Value.IsZero() {
			return Field{}, invalid(KindDictionary, nil, "entry %d is missing its key or value", i)
		}
	}
	return Field{kind: KindDictionary, entries: slices.Clone(entries)}, nil
}

// NewComposite returns a composite Field of kind k with the given
// type identifier and named fields, in the given order. Field names
// must be unique.
func NewComposite(k Kind, typeID string, pairs ...Pair) (Field, error) {
	if !k.IsComposite() {
		return Field{}, invalid(k, typeID, "not a composite kind")
	}
	if typeID == "" {
		return Field{}, invalid(k, nil, "empty type identifier")
	}
	seen := mapset.New[string]()
	for _, p := range pairs {
		switch {
		case p.Name == "":
			return Field{}, invalid(k, typeID, "empty field name")
		case seen.Has(p.Name):
			return Field{}, invalid(k, typeID, "duplicate field %q", p.Name)
		case p.Value.IsZero():
			return Field{}, invalid(k, typeID, "field %q is missing its value", p.Name)
		}
		seen.Add(p.Name)
	}
	return Field{kind: k, str: typeID, pairs: slices.Clone(pairs)}, nil
}

// Struct returns a Struct Field.
func Struct(typeID string, pairs ...Pair) (Field, error) {
	return NewComposite(KindStruct, typeID, pairs...)
}

func toBig[T Integer](v T) *big.Int {
	if v < 0 {
		return big.NewInt(int64(v))
	}
	return new(big.Int).SetUint64(uint64(v))
}

// fromBig converts v to T, reporting whether v fits in T exactly.
func fromBig[T Integer](v *big.Int) (T, bool) {
	switch {
	case v.IsInt64():
		i := v.Int64()
		t := T(i)
		return t, int64(t) == i && (t < 0) == (i < 0)
	case v.IsUint64():
		u := v.Uint64()
		t := T(u)
		return t, uint64(t) == u && t >= 0
	}
	return 0, false
}
