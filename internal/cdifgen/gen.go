// Package cdifgen generates native Go types and their converters
// from a description of Cadence composite and enum types.
package cdifgen

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/cdif"
	"github.com/segmentio/encoding/json"
	"github.com/tidwall/jsonc"
)

// A Schema describes the types to generate.
type Schema struct {
	// Package is the name of the generated Go package.
	Package string       `json:"package"`
	Enums   []*Enum      `json:"enums"`
	Types   []*Composite `json:"types"`
}

// An Enum describes a Cadence enum.
type Enum struct {
	// Name is the Go type name.
	Name string `json:"name"`
	// TypeID is the Cadence type identifier.
	TypeID string `json:"typeID"`
	// RawType is the Cadence type of the raw values, one of the
	// fixed width integer types.
	RawType string `json:"rawType"`
	Cases   []Case `json:"cases"`
}

// A Case is one case of an Enum.
type Case struct {
	Name string `json:"name"`
	Raw  uint64 `json:"raw"`
}

// A Composite describes a Cadence composite type.
type Composite struct {
	// Name is the Go type name.
	Name string `json:"name"`
	// TypeID is the Cadence type identifier.
	TypeID string `json:"typeID"`
	// Kind is the composite kind: Struct (the default), Resource,
	// Event or Contract.
	Kind   string   `json:"kind"`
	Fields []*Field `json:"fields"`
}

// A Field is a named field of a Composite.
type Field struct {
	// Name is the Cadence field name.
	Name string `json:"name"`
	// Type is the Cadence type of the field. Besides the Cadence
	// builtin types, it may name an Enum or Composite of the Schema.
	// "[T]" is an array of T, "T?" an optional T.
	Type string `json:"type"`
}

// ParseSchema parses a JSON schema. Comments and trailing commas are
// allowed.
func ParseSchema(bs []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(bs)))
	dec.DisallowUnknownFields()
	var ret Schema
	if err := dec.Decode(&ret); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return &ret, nil
}

// sliceableKinds are the kinds whose default Go type converts back
// to the same kind, and so can be array and optional elements.
var sliceableKinds = mapset.New(
	cdif.KindBool, cdif.KindString, cdif.KindBytes, cdif.KindAddress,
	cdif.KindPath, cdif.KindCapability, cdif.KindInt,
	cdif.KindInt8, cdif.KindInt16, cdif.KindInt32, cdif.KindInt64,
	cdif.KindUInt8, cdif.KindUInt16, cdif.KindUInt32, cdif.KindUInt64,
)

var intGoTypes = map[cdif.Kind]string{
	cdif.KindInt8:   "int8",
	cdif.KindInt16:  "int16",
	cdif.KindInt32:  "int32",
	cdif.KindInt64:  "int64",
	cdif.KindUInt8:  "uint8",
	cdif.KindUInt16: "uint16",
	cdif.KindUInt32: "uint32",
	cdif.KindUInt64: "uint64",
	cdif.KindWord8:  "uint8",
	cdif.KindWord16: "uint16",
	cdif.KindWord32: "uint32",
	cdif.KindWord64: "uint64",
}

var initialisms = map[string]string{
	"id":   "ID",
	"uuid": "UUID",
	"url":  "URL",
}

type generator struct {
	out    bytes.Buffer
	inits  bytes.Buffer
	schema *Schema

	enums   map[string]*Enum
	types   map[string]*Composite
	imports mapset.Set[string]
}

// Generate returns the gofmt-ed Go source for schema.
func Generate(schema *Schema) (string, error) {
	if schema == nil {
		return "", errors.New("no schema provided")
	}
	g := generator{
		schema:  schema,
		enums:   map[string]*Enum{},
		types:   map[string]*Composite{},
		imports: mapset.New("github.com/danderson/cdif"),
	}
	if err := g.check(); err != nil {
		return "", err
	}

	slices.SortFunc(schema.Enums, func(a, b *Enum) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortFunc(schema.Types, func(a, b *Composite) int { return cmp.Compare(a.Name, b.Name) })
	for _, e := range schema.Enums {
		if err := g.Enum(e); err != nil {
			return "", fmt.Errorf("enum %s: %w", e.Name, err)
		}
	}
	for _, c := range schema.Types {
		if err := g.Composite(c); err != nil {
			return "", fmt.Errorf("type %s: %w", c.Name, err)
		}
	}
	if inits := g.inits.String(); len(inits) > 0 {
		g.f("func init() {\n%s\n}\n", strings.TrimSpace(inits))
	}

	var file bytes.Buffer
	fmt.Fprintf(&file, "// Code generated by cdifgen. DO NOT EDIT.\n\npackage %s\n\n", schema.Package)
	file.WriteString("import (\n")
	for _, imp := range g.sortedImports() {
		if imp == "" {
			file.WriteString("\n")
			continue
		}
		fmt.Fprintf(&file, "%q\n", imp)
	}
	file.WriteString(")\n\n")
	file.Write(g.out.Bytes())

	ret, err := format.Source(file.Bytes())
	if err != nil {
		return file.String(), err
	}
	return string(ret), nil
}

func (g *generator) f(msg string, args ...any) {
	fmt.Fprintf(&g.out, msg, args...)
}

func (g *generator) init(msg string, args ...any) {
	fmt.Fprintf(&g.inits, msg, args...)
}

// sortedImports returns the imports, standard library packages first.
func (g *generator) sortedImports() []string {
	var std, other []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			other = append(other, imp)
		} else {
			std = append(std, imp)
		}
	}
	slices.Sort(std)
	slices.Sort(other)
	if len(std) > 0 && len(other) > 0 {
		std = append(std, "")
	}
	return append(std, other...)
}

func (g *generator) check() error {
	if !token.IsIdentifier(g.schema.Package) {
		return fmt.Errorf("invalid package name %q", g.schema.Package)
	}
	names := mapset.New[string]()
	declare := func(name string) error {
		if !token.IsIdentifier(name) || !token.IsExported(name) {
			return fmt.Errorf("invalid type name %q", name)
		}
		if names.Has(name) {
			return fmt.Errorf("duplicate type name %q", name)
		}
		names.Add(name)
		return nil
	}
	for _, e := range g.schema.Enums {
		if err := declare(e.Name); err != nil {
			return err
		}
		g.enums[e.Name] = e
	}
	for _, c := range g.schema.Types {
		if err := declare(c.Name); err != nil {
			return err
		}
		g.types[c.Name] = c
	}
	return nil
}

func (g *generator) Enum(e *Enum) error {
	if e.TypeID == "" {
		return errors.New("no type ID")
	}
	if len(e.Cases) == 0 {
		return errors.New("no cases")
	}
	rawKind, err := cdif.ParseKind(e.RawType)
	if err != nil {
		return err
	}
	goType, ok := intGoTypes[rawKind]
	if !ok {
		return fmt.Errorf("raw type %s is not a fixed width integer", e.RawType)
	}
	cases := make([]cdif.EnumCase[string], 0, len(e.Cases))
	for _, c := range e.Cases {
		if !token.IsIdentifier(e.Name + c.Name) {
			return fmt.Errorf("invalid case name %q", c.Name)
		}
		cases = append(cases, cdif.EnumCase[string]{Raw: c.Raw, Name: c.Name, Value: e.Name + c.Name})
	}
	if _, err := cdif.NewEnumMapping(e.TypeID, rawKind, cases...); err != nil {
		return err
	}

	g.f("// %s is the Cadence enum %s.\ntype %s %s\n\n", e.Name, e.TypeID, e.Name, goType)
	g.f("const (\n")
	for _, c := range e.Cases {
		g.f("%s%s %s = %d\n", e.Name, c.Name, e.Name, c.Raw)
	}
	g.f(")\n\n")
	g.f("// %[1]sMapping converts between %[1]s and Enum Fields.\n", e.Name)
	g.f("var %sMapping = cdif.MustEnumMapping(%q, cdif.Kind%s,\n", e.Name, e.TypeID, rawKind)
	for _, c := range e.Cases {
		g.f("cdif.EnumCase[%[1]s]{Raw: %[2]d, Name: %[3]q, Value: %[1]s%[3]s},\n", e.Name, c.Raw, c.Name)
	}
	g.f(")\n\n")
	g.init("cdif.MustRegister[%[1]s](%[1]sMapping)\n", e.Name)
	return nil
}

func (g *generator) Composite(c *Composite) error {
	kind := cdif.KindStruct
	if c.Kind != "" {
		k, err := cdif.ParseKind(c.Kind)
		if err != nil {
			return err
		}
		if !k.IsComposite() {
			return fmt.Errorf("%s is not a composite kind", c.Kind)
		}
		kind = k
	}
	if c.TypeID == "" {
		return errors.New("no type ID")
	}

	type resolved struct {
		*Field
		goName string
		typ    *fieldType
	}
	fields := make([]resolved, 0, len(c.Fields))
	goNames := mapset.New[string]()
	cadenceNames := mapset.New[string]()
	for _, f := range c.Fields {
		if f.Name == "" || cadenceNames.Has(f.Name) {
			return fmt.Errorf("empty or duplicate field name %q", f.Name)
		}
		cadenceNames.Add(f.Name)
		goName := goIdentifier(f.Name)
		if !token.IsIdentifier(goName) || goNames.Has(goName) {
			return fmt.Errorf("field %q maps to invalid or duplicate Go name %q", f.Name, goName)
		}
		goNames.Add(goName)
		typ, err := g.resolve(f.Type)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, resolved{f, goName, typ})
	}

	conv := lowerFirst(c.Name) + "Converter"
	g.f("// %s is the Cadence %s %s.\ntype %s struct {\n", c.Name, kind, c.TypeID, c.Name)
	for _, f := range fields {
		g.f("%s %s\n", f.goName, f.typ.goType)
	}
	g.f("}\n\n")

	g.f("type %s struct{}\n\n", conv)

	g.f("func (%s) MarshalCDIF(v %s) (cdif.Field, error) {\n", conv, c.Name)
	g.f("return cdif.Build(func(b *cdif.Builder) cdif.Field {\n")
	g.f("return b.Composite(cdif.Kind%s, %q,\n", kind, c.TypeID)
	for _, f := range fields {
		g.f("cdif.Named(%q, %s),\n", f.Name, f.typ.build("v."+f.goName))
	}
	g.f(")\n})\n}\n\n")

	g.f("func (%s) UnmarshalCDIF(f cdif.Field) (%s, error) {\n", conv, c.Name)
	g.f("return cdif.Parse(f, %q, func(r *cdif.Reader) (ret %s) {\n", c.TypeID, c.Name)
	for _, f := range fields {
		g.f("ret.%s = %s\n", f.goName, f.typ.read(f.Name))
	}
	g.f("return ret\n})\n}\n\n")

	g.init("cdif.MustRegister[%s](%s{})\n", c.Name, conv)
	return nil
}

// A fieldType describes how a Cadence type maps to Go.
type fieldType struct {
	goType string
	// build returns the Builder expression for the Go value v.
	build func(v string) string
	// read returns the Reader expression for the named field.
	read func(name string) string
	// elem reports whether the type can be an array or optional
	// element.
	elem bool
}

func method(recv, name string) (func(string) string, func(string) string) {
	return func(v string) string { return fmt.Sprintf("%s.%s(%s)", recv, name, v) },
		func(n string) string { return fmt.Sprintf("r.%s(%q)", name, n) }
}

func (g *generator) resolve(typ string) (*fieldType, error) {
	if inner, ok := strings.CutSuffix(typ, "?"); ok {
		elem, err := g.resolveElem(inner)
		if err != nil {
			return nil, err
		}
		return &fieldType{
			goType: "*" + elem.goType,
			build:  func(v string) string { return fmt.Sprintf("cdif.BuildOptional(b, %s)", v) },
			read:   func(n string) string { return fmt.Sprintf("cdif.ReadOptional[%s](r, %q)", elem.goType, n) },
			elem:   true,
		}, nil
	}
	if strings.HasPrefix(typ, "[") && strings.HasSuffix(typ, "]") {
		elem, err := g.resolveElem(typ[1 : len(typ)-1])
		if err != nil {
			return nil, err
		}
		return &fieldType{
			goType: "[]" + elem.goType,
			build:  func(v string) string { return fmt.Sprintf("cdif.BuildSlice(b, %s)", v) },
			read:   func(n string) string { return fmt.Sprintf("cdif.ReadSlice[%s](r, %q)", elem.goType, n) },
			elem:   true,
		}, nil
	}

	if e, ok := g.enums[typ]; ok {
		return &fieldType{
			goType: e.Name,
			build:  func(v string) string { return fmt.Sprintf("%sMapping.Build(b, %s)", e.Name, v) },
			read:   func(n string) string { return fmt.Sprintf("%sMapping.Read(r, %q)", e.Name, n) },
			elem:   true,
		}, nil
	}
	if c, ok := g.types[typ]; ok {
		return &fieldType{
			goType: c.Name,
			build:  func(v string) string { return fmt.Sprintf("b.Value(%s)", v) },
			read:   func(n string) string { return fmt.Sprintf("cdif.ReadValue[%s](r, %q)", c.Name, n) },
			elem:   true,
		}, nil
	}

	k, err := cdif.ParseKind(typ)
	if err != nil {
		return nil, fmt.Errorf("unknown type %q", typ)
	}
	ret := &fieldType{elem: sliceableKinds.Has(k)}
	switch {
	case k == cdif.KindBool:
		ret.goType = "bool"
		ret.build, ret.read = method("b", "Bool")
	case k == cdif.KindString:
		ret.goType = "string"
		ret.build, ret.read = method("b", "String")
	case k == cdif.KindBytes:
		ret.goType = "[]byte"
		ret.build, ret.read = method("b", "Bytes")
	case k == cdif.KindAddress:
		ret.goType = "cdif.Address"
		ret.build, ret.read = method("b", "Address")
	case k == cdif.KindCapability:
		ret.goType = "cdif.Capability"
		ret.build, ret.read = method("b", "Capability")
	case k == cdif.KindPath:
		ret.goType = "cdif.Path"
		ret.build = func(v string) string { return fmt.Sprintf("b.Path(%[1]s.Domain, %[1]s.Identifier)", v) }
		_, ret.read = method("b", "Path")
	case k.IsFixedPoint():
		g.imports.Add("github.com/shopspring/decimal")
		ret.goType = "decimal.Decimal"
		ret.build, _ = method("b", k.String())
		ret.read = func(n string) string { return fmt.Sprintf("r.Fixed(%q, cdif.Kind%s)", n, k) }
	case intGoTypes[k] != "":
		ret.goType = intGoTypes[k]
		ret.build = func(v string) string { return fmt.Sprintf("cdif.BuildInt(b, cdif.Kind%s, %s)", k, v) }
		ret.read = func(n string) string { return fmt.Sprintf("cdif.ReadIntKind[%s](r, %q, cdif.Kind%s)", ret.goType, n, k) }
	case k.IsInteger():
		g.imports.Add("math/big")
		ret.goType = "*big.Int"
		ret.build = func(v string) string { return fmt.Sprintf("b.Int(cdif.Kind%s, %s)", k, v) }
		ret.read = func(n string) string { return fmt.Sprintf("r.Int(%q, cdif.Kind%s)", n, k) }
	default:
		return nil, fmt.Errorf("unsupported field type %s", k)
	}
	return ret, nil
}

func (g *generator) resolveElem(typ string) (*fieldType, error) {
	ret, err := g.resolve(typ)
	if err != nil {
		return nil, err
	}
	if !ret.elem {
		return nil, fmt.Errorf("%s cannot be an array or optional element", typ)
	}
	return ret, nil
}

// goIdentifier returns the exported Go identifier for a Cadence
// field name, in either camelCase or snake_case.
func goIdentifier(s string) string {
	var ret strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		if abbr, ok := initialisms[strings.ToLower(part)]; ok {
			ret.WriteString(abbr)
			continue
		}
		r, n := utf8.DecodeRuneInString(part)
		ret.WriteRune(unicode.ToUpper(r))
		ret.WriteString(part[n:])
	}
	return ret.String()
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
