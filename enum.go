package cdif

import (
	"fmt"
	"math/big"
)

// An EnumCase associates a native enum value with its raw value and
// logical case name.
type EnumCase[E comparable] struct {
	Raw   uint64
	Name  string
	Value E
}

// An EnumMapping maps between a native enum type E and Enum Fields
// of one enum type.
//
// EnumMapping implements [Converter], and can be registered so that
// values of E marshal and unmarshal directly.
type EnumMapping[E comparable] struct {
	typeID  string
	rawKind Kind
	byRaw   map[uint64]EnumCase[E]
	byValue map[E]EnumCase[E]
}

// NewEnumMapping returns a mapping for the enum type typeID, whose
// raw values are integers of kind rawKind.
//
// Each case must have a distinct raw value, name and native value,
// and every raw value must be within the range of rawKind.
func NewEnumMapping[E comparable](typeID string, rawKind Kind, cases ...EnumCase[E]) (*EnumMapping[E], error) {
	if typeID == "" {
		return nil, invalid(KindEnum, nil, "empty type identifier")
	}
	if !rawKind.IsInteger() {
		return nil, invalid(KindEnum, typeID, "raw kind %s is not an integer kind", rawKind)
	}
	ret := &EnumMapping[E]{
		typeID:  typeID,
		rawKind: rawKind,
		byRaw:   make(map[uint64]EnumCase[E], len(cases)),
		byValue: make(map[E]EnumCase[E], len(cases)),
	}
	names := map[string]bool{}
	for _, c := range cases {
		if err := checkInteger(rawKind, new(big.Int).SetUint64(c.Raw)); err != nil {
			return nil, invalid(KindEnum, typeID, "case %s: %v", c.Name, err)
		}
		if prev, ok := ret.byRaw[c.Raw]; ok {
			return nil, invalid(KindEnum, typeID, "cases %s and %s share raw value %d", prev.Name, c.Name, c.Raw)
		}
		if prev, ok := ret.byValue[c.Value]; ok {
			return nil, invalid(KindEnum, typeID, "cases %s and %s share native value %v", prev.Name, c.Name, c.Value)
		}
		if c.Name == "" || names[c.Name] {
			return nil, invalid(KindEnum, typeID, "empty or duplicate case name %q", c.Name)
		}
		names[c.Name] = true
		ret.byRaw[c.Raw] = c
		ret.byValue[c.Value] = c
	}
	return ret, nil
}

// MustEnumMapping is like [NewEnumMapping], but panics on error.
func MustEnumMapping[E comparable](typeID string, rawKind Kind, cases ...EnumCase[E]) *EnumMapping[E] {
	ret, err := NewEnumMapping(typeID, rawKind, cases...)
	if err != nil {
		panic(err)
	}
	return ret
}

// TypeID returns the enum's type identifier.
func (m *EnumMapping[E]) TypeID() string { return m.typeID }

// RawKind returns the kind of the enum's raw values.
func (m *EnumMapping[E]) RawKind() Kind { return m.rawKind }

// CaseName returns the logical case name of v, or the empty string
// if v is not a case of the enum.
func (m *EnumMapping[E]) CaseName(v E) string {
	return m.byValue[v].Name
}

// MarshalCDIF returns the Enum Field for v.
func (m *EnumMapping[E]) MarshalCDIF(v E) (Field, error) {
	c, ok := m.byValue[v]
	if !ok {
		return Field{}, invalid(KindEnum, v, "not a case of %s", m.typeID)
	}
	raw, err := NewInt(m.rawKind, new(big.Int).SetUint64(c.Raw))
	if err != nil {
		return Field{}, err
	}
	return NewEnum(m.typeID, raw, c.Name)
}

// UnmarshalCDIF returns the native case for the Enum Field f.
//
// f's raw value selects the case. Some wire formats do not carry case
// names, so an empty case name is accepted, but a non-empty one must
// match the selected case.
func (m *EnumMapping[E]) UnmarshalCDIF(f Field) (E, error) {
	var zero E
	if f.kind != KindEnum {
		return zero, mismatch("", KindEnum, f.kind)
	}
	if !typeIDMatches(f.str, m.typeID) {
		return zero, StructureError{m.typeID, f.str}
	}
	raw := f.elems[0]
	if raw.kind != m.rawKind {
		return zero, mismatch("", fmt.Sprintf("%s raw value", m.rawKind), raw.kind)
	}
	if !raw.num.IsUint64() {
		return zero, UnknownEnumCaseError{m.typeID, raw.num.String(), f.caseName}
	}
	c, ok := m.byRaw[raw.num.Uint64()]
	if !ok || (f.caseName != "" && f.caseName != c.Name) {
		return zero, UnknownEnumCaseError{m.typeID, raw.num.String(), f.caseName}
	}
	return c.Value, nil
}

// Build returns the Enum Field for v, recording any error in b.
func (m *EnumMapping[E]) Build(b *Builder, v E) Field {
	if !b.ok() {
		return Field{}
	}
	return b.Try(m.MarshalCDIF(v))
}

// Read returns the native case of the named Enum field, recording any
// error in r.
func (m *EnumMapping[E]) Read(r *Reader, name string) E {
	var zero E
	f := r.Field(name)
	if r.err != nil {
		return zero
	}
	v, err := m.UnmarshalCDIF(f)
	if err != nil {
		if tm, ok := err.(TypeMismatchError); ok {
			tm.Name = name
			err = tm
		} else {
			err = fmt.Errorf("field %q: %w", name, err)
		}
		r.err = err
		return zero
	}
	return v
}
