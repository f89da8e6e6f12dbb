// Package cborcdc encodes Fields as compact CBOR.
//
// The encoding uses CBOR Core Deterministic Encoding (RFC 8949
// §4.2), so equal Fields always encode to identical bytes, which
// makes encoded Fields usable as cache keys. Unlike JSON-Cadence,
// the encoding preserves enum case names, and so round-trips every
// Field exactly. Text (strings, type identifiers, field names and
// path identifiers) must be valid UTF-8.
package cborcdc

import (
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/danderson/cdif"
	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"
)

// node is the wire form of a Field. Which members are set depends on
// the kind:
//
//   - Str: String, composite and enum type IDs, capability borrow
//     types.
//   - Raw: Bytes, and the address of Address and Capability.
//   - Num: integers, and scaled fixed-point values.
//   - Path: Path and Capability, as [domain, identifier].
//   - Elems: Optional (0 or 1), Array, Enum raw value (1), and
//     composite field values.
//   - Names: composite field names, parallel to Elems.
type node struct {
	Kind    cdif.Kind `cbor:"1,keyasint"`
	Str     string    `cbor:"2,keyasint,omitempty"`
	Raw     []byte    `cbor:"3,keyasint,omitempty"`
	Bool    bool      `cbor:"4,keyasint,omitempty"`
	Num     *big.Int  `cbor:"5,keyasint,omitempty"`
	Path    []string  `cbor:"6,keyasint,omitempty"`
	Elems   []node    `cbor:"7,keyasint,omitempty"`
	Names   []string  `cbor:"8,keyasint,omitempty"`
	Entries []entry   `cbor:"9,keyasint,omitempty"`
	Case    string    `cbor:"10,keyasint,omitempty"`
}

type entry struct {
	_     struct{} `cbor:",toarray"`
	Key   node
	Value node
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborcdc: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:   1024,
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("cborcdc: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode returns the CBOR encoding of f.
func Encode(f cdif.Field) ([]byte, error) {
	n, err := toNode(f)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(n)
}

// Decode parses a CBOR encoded Field. The decoded Field is validated
// the same way as Fields built with the cdif constructors.
func Decode(data []byte) (cdif.Field, error) {
	var n node
	if err := decMode.Unmarshal(data, &n); err != nil {
		return cdif.Field{}, err
	}
	return fromNode(n)
}

// Marshal returns the CBOR encoding of v, converted to a Field with
// [cdif.Marshal].
func Marshal(v any) ([]byte, error) {
	f, err := cdif.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Encode(f)
}

// Unmarshal decodes a CBOR encoded Field and converts it to a T with
// [cdif.Unmarshal].
func Unmarshal[T any](data []byte) (T, error) {
	f, err := Decode(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return cdif.Unmarshal[T](f)
}

// An Encoder writes a sequence of CBOR encoded Fields to a stream.
type Encoder struct {
	enc *cbor.Encoder
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{encMode.NewEncoder(w)}
}

// Encode writes the CBOR encoding of f to the stream.
func (e *Encoder) Encode(f cdif.Field) error {
	n, err := toNode(f)
	if err != nil {
		return err
	}
	return e.enc.Encode(n)
}

// A Decoder reads a sequence of CBOR encoded Fields from a stream.
type Decoder struct {
	dec *cbor.Decoder
}

// NewDecoder returns a Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{decMode.NewDecoder(r)}
}

// Decode reads the next Field from the stream. It returns io.EOF at
// the end of the stream.
func (d *Decoder) Decode() (cdif.Field, error) {
	var n node
	if err := d.dec.Decode(&n); err != nil {
		return cdif.Field{}, err
	}
	return fromNode(n)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of
// data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

func toNode(f cdif.Field) (node, error) {
	k := f.Kind()
	ret := node{Kind: k}
	switch {
	case k == cdif.KindVoid:
	case k == cdif.KindBool:
		ret.Bool, _ = f.AsBool()
	case k == cdif.KindString:
		ret.Str, _ = f.AsString()
	case k == cdif.KindBytes:
		ret.Raw, _ = f.AsBytes()
	case k == cdif.KindAddress:
		a, _ := f.AsAddress()
		ret.Raw = a.Bytes()
	case k.IsInteger():
		ret.Num, _ = f.AsBigInt()
	case k.IsFixedPoint():
		d, _ := f.AsDecimal()
		ret.Num = d.Shift(cdif.FixedPointScale).BigInt()
	case k == cdif.KindPath:
		p, _ := f.AsPath()
		ret.Path = []string{p.Domain, p.Identifier}
	case k == cdif.KindCapability:
		c, _ := f.AsCapability()
		ret.Raw = c.Address.Bytes()
		ret.Path = []string{c.Path.Domain, c.Path.Identifier}
		ret.Str = c.BorrowType
	case k == cdif.KindEnum:
		raw, err := toNode(f.EnumRaw())
		if err != nil {
			return node{}, err
		}
		ret.Str = f.TypeID()
		ret.Case = f.EnumCase()
		ret.Elems = []node{raw}
	case k == cdif.KindOptional:
		if inner, ok := f.Inner(); ok {
			n, err := toNode(inner)
			if err != nil {
				return node{}, err
			}
			ret.Elems = []node{n}
		}
	case k == cdif.KindArray:
		for _, e := range f.Elems() {
			n, err := toNode(e)
			if err != nil {
				return node{}, err
			}
			ret.Elems = append(ret.Elems, n)
		}
	case k == cdif.KindDictionary:
		for _, e := range f.Entries() {
			key, err := toNode(e.Key)
			if err != nil {
				return node{}, err
			}
			val, err := toNode(e.Value)
			if err != nil {
				return node{}, err
			}
			ret.Entries = append(ret.Entries, entry{Key: key, Value: val})
		}
	case k.IsComposite():
		ret.Str = f.TypeID()
		for _, p := range f.Pairs() {
			n, err := toNode(p.Value)
			if err != nil {
				return node{}, fmt.Errorf("field %q: %w", p.Name, err)
			}
			ret.Names = append(ret.Names, p.Name)
			ret.Elems = append(ret.Elems, n)
		}
	default:
		return node{}, fmt.Errorf("cannot encode Field of kind %s", k)
	}
	// CBOR text strings must be valid UTF-8, or the decoder rejects
	// them.
	for _, s := range slices.Concat([]string{ret.Str, ret.Case}, ret.Path, ret.Names) {
		if !utf8.ValidString(s) {
			return node{}, cdif.ValidationError{Kind: k, Value: strconv.Quote(s), Reason: "not valid UTF-8"}
		}
	}
	return ret, nil
}

func fromNode(n node) (cdif.Field, error) {
	k := n.Kind
	switch {
	case k == cdif.KindVoid:
		return cdif.Void(), nil
	case k == cdif.KindBool:
		return cdif.Bool(n.Bool), nil
	case k == cdif.KindString:
		return cdif.String(n.Str), nil
	case k == cdif.KindBytes:
		return cdif.Bytes(n.Raw), nil
	case k == cdif.KindAddress:
		a, err := cdif.AddressFromBytes(n.Raw)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewAddress(a), nil
	case k.IsInteger():
		if n.Num == nil {
			return cdif.Field{}, fmt.Errorf("%s has no value", k)
		}
		return cdif.NewInt(k, n.Num)
	case k.IsFixedPoint():
		if n.Num == nil {
			return cdif.Field{}, fmt.Errorf("%s has no value", k)
		}
		return cdif.NewFixed(k, unscale(n.Num))
	case k == cdif.KindPath:
		p, err := path(n.Path)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewPath(p)
	case k == cdif.KindCapability:
		p, err := path(n.Path)
		if err != nil {
			return cdif.Field{}, err
		}
		a, err := cdif.AddressFromBytes(n.Raw)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewCapability(cdif.Capability{Address: a, Path: p, BorrowType: n.Str})
	case k == cdif.KindEnum:
		if len(n.Elems) != 1 {
			return cdif.Field{}, fmt.Errorf("enum %s has %d raw values, want 1", n.Str, len(n.Elems))
		}
		raw, err := fromNode(n.Elems[0])
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewEnum(n.Str, raw, n.Case)
	case k == cdif.KindOptional:
		switch len(n.Elems) {
		case 0:
			return cdif.None(), nil
		case 1:
			inner, err := fromNode(n.Elems[0])
			if err != nil {
				return cdif.Field{}, err
			}
			return cdif.Some(inner)
		}
		return cdif.Field{}, fmt.Errorf("optional has %d values", len(n.Elems))
	case k == cdif.KindArray:
		elems, err := fromNodes(n.Elems)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.Array(elems...)
	case k == cdif.KindDictionary:
		entries := make([]cdif.Entry, 0, len(n.Entries))
		for i, e := range n.Entries {
			key, err := fromNode(e.Key)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("entry %d key: %w", i, err)
			}
			val, err := fromNode(e.Value)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("entry %d value: %w", i, err)
			}
			entries = append(entries, cdif.Entry{Key: key, Value: val})
		}
		return cdif.Dictionary(entries...)
	case k.IsComposite():
		if len(n.Names) != len(n.Elems) {
			return cdif.Field{}, fmt.Errorf("composite %s has %d names for %d fields", n.Str, len(n.Names), len(n.Elems))
		}
		vals, err := fromNodes(n.Elems)
		if err != nil {
			return cdif.Field{}, err
		}
		pairs := make([]cdif.Pair, len(vals))
		for i, v := range vals {
			pairs[i] = cdif.Named(n.Names[i], v)
		}
		return cdif.NewComposite(k, n.Str, pairs...)
	}
	return cdif.Field{}, fmt.Errorf("unknown kind %s", k)
}

func fromNodes(ns []node) ([]cdif.Field, error) {
	ret := make([]cdif.Field, 0, len(ns))
	for i, n := range ns {
		f, err := fromNode(n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

func path(parts []string) (cdif.Path, error) {
	if len(parts) != 2 {
		return cdif.Path{}, fmt.Errorf("path has %d parts, want 2", len(parts))
	}
	return cdif.Path{Domain: parts[0], Identifier: parts[1]}, nil
}

func unscale(scaled *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(scaled, -cdif.FixedPointScale)
}
