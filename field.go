package cdif

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// A Field is an immutable wire value: one of the variants enumerated
// by [Kind], together with the payload that variant carries.
//
// The zero Field has kind [KindInvalid] and stands for a missing
// value. Constructors never produce it, and reject it when given it
// as a child value.
//
// Fields are values, and safe to copy and share between goroutines.
// Accessors that return slices or big integers return copies.
type Field struct {
	kind Kind

	// str is the String payload, the raw Bytes payload, the type
	// identifier of composites and enums, or a Capability's borrow
	// type.
	str string
	// caseName is the logical case of an Enum.
	caseName string
	b        bool
	// num is the value of integer kinds, and the scaled value of
	// fixed-point kinds.
	num  *big.Int
	addr Address
	path Path

	// elems holds Array elements, the inner value of an Optional
	// (zero or one element), or the raw value of an Enum (exactly
	// one element).
	elems   []Field
	entries []Entry
	pairs   []Pair
}

// A Pair is a named field of a composite.
type Pair struct {
	Name  string
	Value Field
}

// Named returns a Pair.
func Named(name string, value Field) Pair {
	return Pair{name, value}
}

// An Entry is a key/value pair of a dictionary.
type Entry struct {
	Key   Field
	Value Field
}

// Kind returns the kind of f.
func (f Field) Kind() Kind { return f.kind }

// IsZero reports whether f is the zero Field.
func (f Field) IsZero() bool { return f.kind == KindInvalid }

// Is reports whether f is of kind k.
func (f Field) Is(k Kind) bool { return f.kind == k }

// AsBool returns the value of a Bool.
func (f Field) AsBool() (v bool, ok bool) {
	return f.b, f.kind == KindBool
}

// AsString returns the value of a String.
func (f Field) AsString() (v string, ok bool) {
	if f.kind != KindString {
		return "", false
	}
	return f.str, true
}

// AsBytes returns the value of a Bytes.
func (f Field) AsBytes() (v []byte, ok bool) {
	if f.kind != KindBytes {
		return nil, false
	}
	return []byte(f.str), true
}

// AsAddress returns the value of an Address.
func (f Field) AsAddress() (v Address, ok bool) {
	return f.addr, f.kind == KindAddress
}

// AsBigInt returns the value of an integer Field.
func (f Field) AsBigInt() (v *big.Int, ok bool) {
	if !f.kind.IsInteger() {
		return nil, false
	}
	return new(big.Int).Set(f.num), true
}

// AsDecimal returns the value of a fixed-point Field.
func (f Field) AsDecimal() (v decimal.Decimal, ok bool) {
	if !f.kind.IsFixedPoint() {
		return decimal.Decimal{}, false
	}
	return unscale(f.num), true
}

// AsPath returns the value of a Path.
func (f Field) AsPath() (v Path, ok bool) {
	return f.path, f.kind == KindPath
}

// AsCapability returns the value of a Capability.
func (f Field) AsCapability() (v Capability, ok bool) {
	if f.kind != KindCapability {
		return Capability{}, false
	}
	return Capability{f.addr, f.path, f.str}, true
}

// TypeID returns the type identifier of a composite or Enum, or the
// empty string for other kinds.
func (f Field) TypeID() string {
	if f.kind == KindEnum || f.kind.IsComposite() {
		return f.str
	}
	return ""
}

// EnumCase returns the logical case name of an Enum. The case name
// may be empty if the Enum was decoded from a wire format that only
// carries raw values.
func (f Field) EnumCase() string {
	return f.caseName
}

// EnumRaw returns the raw value of an Enum, or the zero Field for
// other kinds.
func (f Field) EnumRaw() Field {
	if f.kind != KindEnum {
		return Field{}
	}
	return f.elems[0]
}

// Inner returns the value wrapped by an Optional. ok is false if f
// is not an Optional or is an empty Optional.
func (f Field) Inner() (v Field, ok bool) {
	if f.kind != KindOptional || len(f.elems) == 0 {
		return Field{}, false
	}
	return f.elems[0], true
}

// IsNone reports whether f is an empty Optional.
func (f Field) IsNone() bool {
	return f.kind == KindOptional && len(f.elems) == 0
}

// Elems returns the elements of an Array.
func (f Field) Elems() []Field {
	if f.kind != KindArray {
		return nil
	}
	return slices.Clone(f.elems)
}

// Entries returns the entries of a Dictionary, in insertion order.
func (f Field) Entries() []Entry {
	return slices.Clone(f.entries)
}

// Pairs returns the named fields of a composite, in order.
func (f Field) Pairs() []Pair {
	return slices.Clone(f.pairs)
}

// Lookup returns the composite field with the given name.
func (f Field) Lookup(name string) (v Field, ok bool) {
	for _, p := range f.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Field{}, false
}

// Equal reports whether f and o are structurally equal: same kind,
// same payload, and recursively equal children in the same order.
// Enums are equal when their type identifiers and raw values are; the
// case name is not part of an enum's value.
func (f Field) Equal(o Field) bool {
	if f.kind != o.kind {
		return false
	}
	switch {
	case f.kind.IsNumeric():
		return f.num.Cmp(o.num) == 0
	case f.kind == KindEnum:
		return f.str == o.str && f.elems[0].Equal(o.elems[0])
	case f.kind == KindDictionary:
		return slices.EqualFunc(f.entries, o.entries, func(a, b Entry) bool {
			return a.Key.Equal(b.Key) && a.Value.Equal(b.Value)
		})
	case f.kind.IsComposite():
		return f.str == o.str && slices.EqualFunc(f.pairs, o.pairs, func(a, b Pair) bool {
			return a.Name == b.Name && a.Value.Equal(b.Value)
		})
	}
	return f.str == o.str &&
		f.b == o.b &&
		f.addr == o.addr &&
		f.path == o.path &&
		slices.EqualFunc(f.elems, o.elems, Field.Equal)
}

// String returns a compact human readable rendering of f.
func (f Field) String() string {
	var ret strings.Builder
	f.format(&ret)
	return ret.String()
}

func (f Field) format(out *strings.Builder) {
	switch {
	case f.kind == KindInvalid:
		out.WriteString("<invalid>")
	case f.kind == KindVoid:
		out.WriteString("Void")
	case f.kind == KindBool:
		out.WriteString(strconv.FormatBool(f.b))
	case f.kind == KindString:
		out.WriteString(strconv.Quote(f.str))
	case f.kind == KindBytes:
		fmt.Fprintf(out, "Bytes(%s)", hex.EncodeToString([]byte(f.str)))
	case f.kind == KindAddress:
		out.WriteString(f.addr.String())
	case f.kind.IsInteger():
		fmt.Fprintf(out, "%s(%s)", f.kind, f.num)
	case f.kind.IsFixedPoint():
		fmt.Fprintf(out, "%s(%s)", f.kind, formatFixed(f.num))
	case f.kind == KindPath:
		out.WriteString(f.path.String())
	case f.kind == KindCapability:
		c, _ := f.AsCapability()
		out.WriteString(c.String())
	case f.kind == KindEnum:
		out.WriteString(f.str)
		if f.caseName != "" {
			out.WriteByte('.')
			out.WriteString(f.caseName)
		}
		out.WriteByte('(')
		f.elems[0].format(out)
		out.WriteByte(')')
	case f.kind == KindOptional:
		if len(f.elems) == 0 {
			out.WriteString("None")
			return
		}
		out.WriteString("Some(")
		f.elems[0].format(out)
		out.WriteByte(')')
	case f.kind == KindArray:
		out.WriteByte('[')
		for i, e := range f.elems {
			if i > 0 {
				out.WriteString(", ")
			}
			e.format(out)
		}
		out.WriteByte(']')
	case f.kind == KindDictionary:
		out.WriteByte('{')
		for i, e := range f.entries {
			if i > 0 {
				out.WriteString(", ")
			}
			e.Key.format(out)
			out.WriteString(": ")
			e.Value.format(out)
		}
		out.WriteByte('}')
	case f.kind.IsComposite():
		fmt.Fprintf(out, "%s %s{", f.kind, f.str)
		for i, p := range f.pairs {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(p.Name)
			out.WriteString(": ")
			p.Value.format(out)
		}
		out.WriteByte('}')
	default:
		out.WriteString(f.kind.String())
	}
}
