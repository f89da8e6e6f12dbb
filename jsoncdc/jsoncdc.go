// Package jsoncdc encodes Fields in the JSON-Cadence Data Interchange
// Format, the JSON representation used by access nodes to carry
// script arguments and results.
//
// Every value is an object with a "type" key naming its kind and,
// except for Void, a "value" key:
//
//	{"type":"UFix64","value":"1234.00000000"}
//
// Integers and fixed-point numbers are decimal strings, fixed-point
// numbers always with exactly 8 fractional digits. Composites and
// enums are objects with an "id" and an ordered "fields" list; an
// enum's single field is its "rawValue". Enum case names are not
// represented, and are empty in decoded Fields. Text must be valid
// UTF-8: encoding a Field holding other bytes fails rather than
// replacing them.
package jsoncdc

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/danderson/cdif"
	"github.com/segmentio/encoding/json"
	"github.com/shopspring/decimal"
)

type typed struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type bare struct {
	Type string `json:"type"`
}

type wire struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type composite[V any] struct {
	ID     string              `json:"id"`
	Fields []compositeField[V] `json:"fields"`
}

type compositeField[V any] struct {
	Name  string `json:"name"`
	Value V      `json:"value"`
}

type entry[V any] struct {
	Key   V `json:"key"`
	Value V `json:"value"`
}

type path struct {
	Domain     string `json:"domain"`
	Identifier string `json:"identifier"`
}

type capability[V any] struct {
	Path       V      `json:"path"`
	Address    string `json:"address"`
	BorrowType string `json:"borrowType"`
}

const rawValueField = "rawValue"

var null = []byte("null")

// Encode returns the JSON-Cadence encoding of f.
func Encode(f cdif.Field) ([]byte, error) {
	return EncodeIndent(f, "")
}

// EncodeIndent is like [Encode], but indents the output.
func EncodeIndent(f cdif.Field, indent string) ([]byte, error) {
	v, err := encode(f)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(out.Bytes(), []byte("\n")), nil
}

// Marshal returns the JSON-Cadence encoding of v, converted to a
// Field with [cdif.Marshal].
func Marshal(v any) ([]byte, error) {
	f, err := cdif.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Encode(f)
}

// Unmarshal decodes a JSON-Cadence value and converts it to a T with
// [cdif.Unmarshal].
func Unmarshal[T any](data []byte) (T, error) {
	f, err := Decode(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return cdif.Unmarshal[T](f)
}

func encode(f cdif.Field) (any, error) {
	k := f.Kind()
	switch {
	case k == cdif.KindVoid:
		return bare{k.String()}, nil
	case k == cdif.KindBool:
		v, _ := f.AsBool()
		return typed{k.String(), v}, nil
	case k == cdif.KindString:
		v, _ := f.AsString()
		if err := checkText(k, v); err != nil {
			return nil, err
		}
		return typed{k.String(), v}, nil
	case k == cdif.KindBytes:
		v, _ := f.AsBytes()
		return typed{k.String(), hex.EncodeToString(v)}, nil
	case k == cdif.KindAddress:
		v, _ := f.AsAddress()
		return typed{k.String(), v.String()}, nil
	case k.IsInteger():
		v, _ := f.AsBigInt()
		return typed{k.String(), v.String()}, nil
	case k.IsFixedPoint():
		v, _ := f.AsDecimal()
		return typed{k.String(), v.StringFixed(cdif.FixedPointScale)}, nil
	case k == cdif.KindPath:
		v, _ := f.AsPath()
		if err := checkText(k, v.Identifier); err != nil {
			return nil, err
		}
		return typed{k.String(), path{v.Domain, v.Identifier}}, nil
	case k == cdif.KindCapability:
		v, _ := f.AsCapability()
		if err := checkText(k, v.Path.Identifier, v.BorrowType); err != nil {
			return nil, err
		}
		return typed{k.String(), capability[any]{
			Path:       typed{cdif.KindPath.String(), path{v.Path.Domain, v.Path.Identifier}},
			Address:    v.Address.String(),
			BorrowType: v.BorrowType,
		}}, nil
	case k == cdif.KindEnum:
		if err := checkText(k, f.TypeID()); err != nil {
			return nil, err
		}
		raw, err := encode(f.EnumRaw())
		if err != nil {
			return nil, err
		}
		return typed{k.String(), composite[any]{
			ID:     f.TypeID(),
			Fields: []compositeField[any]{{rawValueField, raw}},
		}}, nil
	case k == cdif.KindOptional:
		inner, ok := f.Inner()
		if !ok {
			return typed{k.String(), nil}, nil
		}
		v, err := encode(inner)
		if err != nil {
			return nil, err
		}
		return typed{k.String(), v}, nil
	case k == cdif.KindArray:
		elems := f.Elems()
		ret := make([]any, 0, len(elems))
		for _, e := range elems {
			v, err := encode(e)
			if err != nil {
				return nil, err
			}
			ret = append(ret, v)
		}
		return typed{k.String(), ret}, nil
	case k == cdif.KindDictionary:
		entries := f.Entries()
		ret := make([]entry[any], 0, len(entries))
		for _, e := range entries {
			key, err := encode(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := encode(e.Value)
			if err != nil {
				return nil, err
			}
			ret = append(ret, entry[any]{key, val})
		}
		return typed{k.String(), ret}, nil
	case k.IsComposite():
		if err := checkText(k, f.TypeID()); err != nil {
			return nil, err
		}
		pairs := f.Pairs()
		ret := composite[any]{
			ID:     f.TypeID(),
			Fields: make([]compositeField[any], 0, len(pairs)),
		}
		for _, p := range pairs {
			if err := checkText(k, p.Name); err != nil {
				return nil, err
			}
			v, err := encode(p.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", p.Name, err)
			}
			ret.Fields = append(ret.Fields, compositeField[any]{p.Name, v})
		}
		return typed{k.String(), ret}, nil
	}
	return nil, fmt.Errorf("cannot encode Field of kind %s", k)
}

// checkText reports an error if any of texts is not valid UTF-8,
// which JSON cannot represent without replacing bytes.
func checkText(k cdif.Kind, texts ...string) error {
	for _, s := range texts {
		if !utf8.ValidString(s) {
			return cdif.ValidationError{Kind: k, Value: strconv.Quote(s), Reason: "not valid UTF-8"}
		}
	}
	return nil
}

// Decode parses a JSON-Cadence value.
//
// Decoded values are validated the same way as values built with the
// cdif constructors: an out of range integer, or a fixed-point number
// with more than 8 fractional digits, is an error.
func Decode(data []byte) (cdif.Field, error) {
	return decode(data)
}

func decode(data []byte) (cdif.Field, error) {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return cdif.Field{}, err
	}
	if w.Type == "" {
		return cdif.Field{}, fmt.Errorf("value has no type: %s", data)
	}
	k, err := cdif.ParseKind(w.Type)
	if err != nil {
		return cdif.Field{}, err
	}
	if k == cdif.KindVoid {
		return cdif.Void(), nil
	}
	if k == cdif.KindOptional {
		if len(w.Value) == 0 || bytes.Equal(w.Value, null) {
			return cdif.None(), nil
		}
		inner, err := decode(w.Value)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.Some(inner)
	}
	if len(w.Value) == 0 {
		return cdif.Field{}, fmt.Errorf("%s value is missing", k)
	}

	f, err := decodeValue(k, w.Value)
	if err != nil {
		return cdif.Field{}, fmt.Errorf("decoding %s: %w", k, err)
	}
	return f, nil
}

func decodeValue(k cdif.Kind, data json.RawMessage) (cdif.Field, error) {
	switch {
	case k == cdif.KindBool:
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return cdif.Field{}, err
		}
		return cdif.Bool(v), nil
	case k == cdif.KindString:
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return cdif.Field{}, err
		}
		return cdif.String(v), nil
	case k == cdif.KindBytes:
		s, err := decodeString(data)
		if err != nil {
			return cdif.Field{}, err
		}
		bs, err := hex.DecodeString(s)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.Bytes(bs), nil
	case k == cdif.KindAddress:
		s, err := decodeString(data)
		if err != nil {
			return cdif.Field{}, err
		}
		a, err := cdif.ParseAddress(s)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewAddress(a), nil
	case k.IsInteger():
		s, err := decodeString(data)
		if err != nil {
			return cdif.Field{}, err
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return cdif.Field{}, fmt.Errorf("invalid integer %q", s)
		}
		return cdif.NewInt(k, v)
	case k.IsFixedPoint():
		s, err := decodeString(data)
		if err != nil {
			return cdif.Field{}, err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewFixed(k, d)
	case k == cdif.KindPath:
		var p path
		if err := json.Unmarshal(data, &p); err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewPath(cdif.Path{Domain: p.Domain, Identifier: p.Identifier})
	case k == cdif.KindCapability:
		var c capability[json.RawMessage]
		if err := json.Unmarshal(data, &c); err != nil {
			return cdif.Field{}, err
		}
		pf, err := decode(c.Path)
		if err != nil {
			return cdif.Field{}, fmt.Errorf("path: %w", err)
		}
		p, ok := pf.AsPath()
		if !ok {
			return cdif.Field{}, fmt.Errorf("path has kind %s", pf.Kind())
		}
		a, err := cdif.ParseAddress(c.Address)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewCapability(cdif.Capability{Address: a, Path: p, BorrowType: c.BorrowType})
	case k == cdif.KindEnum:
		var c composite[json.RawMessage]
		if err := json.Unmarshal(data, &c); err != nil {
			return cdif.Field{}, err
		}
		if len(c.Fields) != 1 || c.Fields[0].Name != rawValueField {
			return cdif.Field{}, fmt.Errorf("enum %s must have exactly one field %q", c.ID, rawValueField)
		}
		raw, err := decode(c.Fields[0].Value)
		if err != nil {
			return cdif.Field{}, err
		}
		return cdif.NewEnum(c.ID, raw, "")
	case k == cdif.KindArray:
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return cdif.Field{}, err
		}
		ret := make([]cdif.Field, 0, len(elems))
		for i, e := range elems {
			f, err := decode(e)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("element %d: %w", i, err)
			}
			ret = append(ret, f)
		}
		return cdif.Array(ret...)
	case k == cdif.KindDictionary:
		var entries []entry[json.RawMessage]
		if err := json.Unmarshal(data, &entries); err != nil {
			return cdif.Field{}, err
		}
		ret := make([]cdif.Entry, 0, len(entries))
		for i, e := range entries {
			key, err := decode(e.Key)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("entry %d key: %w", i, err)
			}
			val, err := decode(e.Value)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("entry %d value: %w", i, err)
			}
			ret = append(ret, cdif.Entry{Key: key, Value: val})
		}
		return cdif.Dictionary(ret...)
	case k.IsComposite():
		var c composite[json.RawMessage]
		if err := json.Unmarshal(data, &c); err != nil {
			return cdif.Field{}, err
		}
		pairs := make([]cdif.Pair, 0, len(c.Fields))
		for _, cf := range c.Fields {
			f, err := decode(cf.Value)
			if err != nil {
				return cdif.Field{}, fmt.Errorf("field %q: %w", cf.Name, err)
			}
			pairs = append(pairs, cdif.Named(cf.Name, f))
		}
		return cdif.NewComposite(k, c.ID, pairs...)
	}
	return cdif.Field{}, fmt.Errorf("unsupported kind %s", k)
}

func decodeString(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}
