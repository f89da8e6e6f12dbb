package cdif

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// A Reader extracts named values from a composite Field in a
// declarative block. It is the dual of [Builder].
//
// Reader methods look up a field by name and coerce it to a native
// value. The first failure (missing field, kind mismatch, unknown
// enum case...) is recorded, and the method returns the zero value.
// Once an error is recorded, further calls do nothing.
//
//	v, err := cdif.Parse(f, "TestClass", func(r *cdif.Reader) TestClass {
//		return TestClass{
//			Address: r.Address("address"),
//			Balance: r.Decimal("balance"),
//			IsValid: r.Bool("isValid"),
//		}
//	})
type Reader struct {
	reg *Registry
	f   Field
	err error
}

// Parse checks that f is a composite whose type matches typeID, then
// runs fn with a Reader over f's fields. If any extraction fails,
// Parse returns the zero T and the first error.
//
// typeID matches f's type identifier if they are equal, or if f's
// identifier is qualified and its last components are "."+typeID
// (for example "s.0f1e.TestClass" matches "TestClass"). An empty
// typeID matches any composite.
func Parse[T any](f Field, typeID string, fn func(r *Reader) T) (T, error) {
	return parseWith(DefaultRegistry, f, typeID, fn)
}

func parseWith[T any](reg *Registry, f Field, typeID string, fn func(r *Reader) T) (T, error) {
	var zero T
	if err := checkComposite(f, typeID); err != nil {
		return zero, err
	}
	r := &Reader{reg: reg, f: f}
	ret := fn(r)
	if r.err != nil {
		return zero, r.err
	}
	return ret, nil
}

func checkComposite(f Field, typeID string) error {
	if !f.kind.IsComposite() {
		return mismatch("", "composite", f.kind)
	}
	if !typeIDMatches(f.str, typeID) {
		return StructureError{typeID, f.str}
	}
	return nil
}

func typeIDMatches(got, want string) bool {
	return want == "" || got == want || strings.HasSuffix(got, "."+want)
}

// TypeID returns the type identifier of the composite being read.
func (r *Reader) TypeID() string { return r.f.str }

// Err returns the first error recorded by the Reader.
func (r *Reader) Err() error { return r.err }

// Fail records err, unless an error is already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Has reports whether the composite has a field with the given name.
func (r *Reader) Has(name string) bool {
	_, ok := r.f.Lookup(name)
	return ok
}

// Field returns the named field as-is.
func (r *Reader) Field(name string) Field {
	if r.err != nil {
		return Field{}
	}
	f, ok := r.f.Lookup(name)
	if !ok {
		r.err = FieldNotFoundError{r.f.str, name}
		return Field{}
	}
	return f
}

// expect returns the named field, checking that it has kind k.
func (r *Reader) expect(name string, k Kind) (Field, bool) {
	f := r.Field(name)
	if r.err != nil {
		return Field{}, false
	}
	if f.kind != k {
		r.err = mismatch(name, k, f.kind)
		return Field{}, false
	}
	return f, true
}

// Bool returns the value of the named Bool field.
func (r *Reader) Bool(name string) bool {
	f, _ := r.expect(name, KindBool)
	return f.b
}

// String returns the value of the named String field.
func (r *Reader) String(name string) string {
	f, _ := r.expect(name, KindString)
	return f.str
}

// Bytes returns the value of the named Bytes field.
func (r *Reader) Bytes(name string) []byte {
	f, ok := r.expect(name, KindBytes)
	if !ok {
		return nil
	}
	return []byte(f.str)
}

// Address returns the value of the named Address field.
func (r *Reader) Address(name string) Address {
	f, _ := r.expect(name, KindAddress)
	return f.addr
}

// Path returns the value of the named Path field.
func (r *Reader) Path(name string) Path {
	f, _ := r.expect(name, KindPath)
	return f.path
}

// Capability returns the value of the named Capability field.
func (r *Reader) Capability(name string) Capability {
	f, _ := r.expect(name, KindCapability)
	c, _ := f.AsCapability()
	return c
}

// Decimal returns the value of the named fixed-point field, which
// may be either a UFix64 or a Fix64.
func (r *Reader) Decimal(name string) decimal.Decimal {
	f := r.Field(name)
	if r.err != nil {
		return decimal.Decimal{}
	}
	d, ok := f.AsDecimal()
	if !ok {
		r.err = mismatch(name, "fixed-point", f.kind)
	}
	return d
}

// Fixed returns the value of the named fixed-point field, which must
// be of kind k.
func (r *Reader) Fixed(name string, k Kind) decimal.Decimal {
	f, _ := r.expect(name, k)
	d, _ := f.AsDecimal()
	return d
}

// Int returns the value of the named integer field, which must be of
// kind k.
func (r *Reader) Int(name string, k Kind) *big.Int {
	f, ok := r.expect(name, k)
	if !ok {
		return nil
	}
	v, _ := f.AsBigInt()
	return v
}

// BigInt returns the value of the named integer field, of any
// integer kind.
func (r *Reader) BigInt(name string) *big.Int {
	f := r.Field(name)
	if r.err != nil {
		return nil
	}
	v, ok := f.AsBigInt()
	if !ok {
		r.err = mismatch(name, "integer", f.kind)
	}
	return v
}

// Optional returns the value wrapped by the named Optional field,
// and whether it is present.
func (r *Reader) Optional(name string) (Field, bool) {
	f, ok := r.expect(name, KindOptional)
	if !ok {
		return Field{}, false
	}
	return f.Inner()
}

// Array returns the elements of the named Array field.
func (r *Reader) Array(name string) []Field {
	f, _ := r.expect(name, KindArray)
	return f.Elems()
}

// Dictionary returns the entries of the named Dictionary field.
func (r *Reader) Dictionary(name string) []Entry {
	f, _ := r.expect(name, KindDictionary)
	return f.Entries()
}

// ReadInt returns the value of the named integer field as a T. The
// field may be of any integer kind, but its value must fit in T.
func ReadInt[T Integer](r *Reader, name string) T {
	f := r.Field(name)
	if r.err != nil {
		return 0
	}
	v, ok := f.AsBigInt()
	if !ok {
		r.err = mismatch(name, "integer", f.kind)
		return 0
	}
	ret, ok := fromBig[T](v)
	if !ok {
		r.err = mismatch(name, fmt.Sprintf("integer representable as %s", reflect.TypeFor[T]()), f.kind)
		return 0
	}
	return ret
}

// ReadIntKind is like [ReadInt], but the field must be of kind k.
func ReadIntKind[T Integer](r *Reader, name string, k Kind) T {
	f, ok := r.expect(name, k)
	if !ok {
		return 0
	}
	v, _ := f.AsBigInt()
	ret, ok := fromBig[T](v)
	if !ok {
		r.err = mismatch(name, fmt.Sprintf("%s representable as %s", k, reflect.TypeFor[T]()), f.kind)
		return 0
	}
	return ret
}

// ReadValue unmarshals the named field into a T, using the Reader's
// registry.
func ReadValue[T any](r *Reader, name string) T {
	var zero T
	f := r.Field(name)
	if r.err != nil {
		return zero
	}
	v, err := unmarshalWith[T](r.reg, f)
	if err != nil {
		r.err = fmt.Errorf("field %q: %w", name, err)
		return zero
	}
	return v
}

// ReadSlice unmarshals the elements of the named Array field into a
// []T, using the Reader's registry.
func ReadSlice[T any](r *Reader, name string) []T {
	elems := r.Array(name)
	if r.err != nil {
		return nil
	}
	ret := make([]T, 0, len(elems))
	for i, e := range elems {
		v, err := unmarshalWith[T](r.reg, e)
		if err != nil {
			r.err = fmt.Errorf("field %q element %d: %w", name, i, err)
			return nil
		}
		ret = append(ret, v)
	}
	return ret
}

// ReadOptional unmarshals the named Optional field into a *T, which
// is nil if the Optional is empty.
func ReadOptional[T any](r *Reader, name string) *T {
	inner, ok := r.Optional(name)
	if !ok || r.err != nil {
		return nil
	}
	v, err := unmarshalWith[T](r.reg, inner)
	if err != nil {
		r.err = fmt.Errorf("field %q: %w", name, err)
		return nil
	}
	return &v
}

// ReadStruct parses the named composite field with fn, as [Parse]
// does.
func ReadStruct[T any](r *Reader, name, typeID string, fn func(r *Reader) T) T {
	var zero T
	f := r.Field(name)
	if r.err != nil {
		return zero
	}
	v, err := parseWith(r.reg, f, typeID, fn)
	if err != nil {
		r.err = fmt.Errorf("field %q: %w", name, err)
		return zero
	}
	return v
}
