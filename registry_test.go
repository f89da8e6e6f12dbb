package cdif

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/creachadair/taskgroup"
	"github.com/google/go-cmp/cmp"
)

type celsius int16

var celsiusConverter = ConverterFuncs(
	func(c celsius) (Field, error) { return NewInteger(KindInt16, c) },
	func(f Field) (celsius, error) {
		v, ok := f.AsBigInt()
		if !ok || f.Kind() != KindInt16 {
			return 0, mismatch("", KindInt16, f.Kind())
		}
		return celsius(v.Int64()), nil
	},
)

// tree is a self-referential type, to exercise recursive resolution.
type tree struct {
	Val  int
	Kids []*tree
}

func (t tree) MarshalCDIF() (Field, error) {
	return Build(func(b *Builder) Field {
		return b.Struct("Tree",
			Named("val", b.Value(t.Val)),
			Named("kids", b.Value(t.Kids)),
		)
	})
}

func (t *tree) UnmarshalCDIF(f Field) error {
	v, err := Parse(f, "Tree", func(r *Reader) tree {
		return tree{
			Val:  ReadInt[int](r, "val"),
			Kids: ReadValue[[]*tree](r, "kids"),
		}
	})
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry()
	if err := RegisterIn(r, celsiusConverter); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := RegisterIn(r, celsiusConverter)
	if diff := cmp.Diff(err, error(ConflictError{"cdif.celsius"})); diff != "" {
		t.Errorf("second registration error wrong (-got+want):\n%s", diff)
	}

	// Builtins are preregistered.
	if err := RegisterIn(r, ConverterFuncs(
		func(v string) (Field, error) { return String(v), nil },
		func(f Field) (string, error) { return "", nil },
	)); err == nil {
		t.Error("registering a builtin type succeeded, want ConflictError")
	}

	// Types resolved through their methods can't be re-registered
	// after first use.
	if !r.Has(reflect.TypeFor[selfConverting]()) {
		t.Fatal("selfConverting has no converter")
	}
	err = RegisterIn(r, ConverterFuncs(
		func(v selfConverting) (Field, error) { return Void(), nil },
		func(f Field) (selfConverting, error) { return selfConverting{}, nil },
	))
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("re-registering a resolved type: got err %v, want ConflictError", err)
	}
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	if err := RegisterIn(r, celsiusConverter); err != nil {
		t.Fatalf("RegisterIn failed: %v", err)
	}
	if _, err := Marshal(celsius(20)); err == nil {
		t.Error("DefaultRegistry marshaled a type registered elsewhere")
	}
	f, err := r.Marshal(celsius(20))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := UnmarshalFrom[celsius](r, f)
	if err != nil || got != 20 {
		t.Errorf("UnmarshalFrom = %v, %v, want 20, nil", got, err)
	}

	// Registries are consulted for nested values too.
	f, err = r.Build(func(b *Builder) Field {
		return b.Struct("Reading", Named("temp", b.Value(celsius(-5))))
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err = parseWith(r, f, "Reading", func(rd *Reader) celsius { return ReadValue[celsius](rd, "temp") })
	if err != nil || got != -5 {
		t.Errorf("ReadValue = %v, %v, want -5, nil", got, err)
	}
}

func TestConverterNotFound(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"struct", unregistered{1}, "cdif.unregistered"},
		{"pointer", &unregistered{1}, "cdif.unregistered"},
		{"slice", []unregistered{{1}}, "cdif.unregistered"},
		{"map", map[string]int{}, "map[string]int"},
		{"nil", nil, "untyped nil"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Marshal(tc.v)
			if diff := cmp.Diff(err, error(ConverterNotFoundError{tc.want})); diff != "" {
				t.Errorf("Marshal error wrong (-got+want):\n%s", diff)
			}
		})
	}

	_, err := Unmarshal[unregistered](String("x"))
	if diff := cmp.Diff(err, error(ConverterNotFoundError{"cdif.unregistered"})); diff != "" {
		t.Errorf("Unmarshal error wrong (-got+want):\n%s", diff)
	}
}

func TestDerivedConverters(t *testing.T) {
	n := 7
	tests := []struct {
		name string
		in   any
		want Field
	}{
		{"pointer", &n, mustField(Some(mustInt(KindInt, 7)))},
		{"nil pointer", (*int)(nil), None()},
		{"slice", []uint8{1, 2}, Bytes([]byte{1, 2})},
		{"slice of int", []int8{1, -1}, mustField(Array(mustInt(KindInt8, 1), mustInt(KindInt8, -1)))},
		{"slice of pointer", []*string{nil}, mustField(Array(None()))},
		{"enum", sha2_256, mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 1), "SHA2_256"))},
		{"recursive", tree{1, []*tree{{2, nil}}}, mustField(Struct("Tree",
			Named("val", mustInt(KindInt, 1)),
			Named("kids", mustField(Array(
				mustField(Some(mustField(Struct("Tree",
					Named("val", mustInt(KindInt, 2)),
					Named("kids", mustField(Array())),
				)))),
			))),
		))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Marshal wrong (-got+want):\n%s", diff)
			}

			back, err := UnmarshalType(reflect.TypeOf(tc.in), got)
			if err != nil {
				t.Fatalf("UnmarshalType failed: %v", err)
			}
			if diff := cmp.Diff(back, tc.in, cmp.Comparer(func(a, b []*tree) bool {
				return fmt.Sprint(MustMarshal(a)) == fmt.Sprint(MustMarshal(b))
			})); diff != "" {
				t.Errorf("UnmarshalType wrong (-got+want):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalInto(t *testing.T) {
	var got testClass
	want := testClass{
		Address:       MustParseAddress("e467b9dd11fa00df"),
		Balance:       mustDecimal("1234"),
		HashAlgorithm: sha3_256,
		IsValid:       true,
	}
	if err := UnmarshalInto(testClassField("TestClass"), &got); err != nil {
		t.Fatalf("UnmarshalInto failed: %v", err)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("UnmarshalInto wrong (-got+want):\n%s", diff)
	}

	// Failures leave the target untouched.
	keep := got
	if err := UnmarshalInto(String("x"), &got); err == nil {
		t.Error("UnmarshalInto of a String into testClass succeeded")
	}
	if diff := cmp.Diff(got, keep); diff != "" {
		t.Errorf("failed UnmarshalInto modified target (-got+want):\n%s", diff)
	}

	for _, bad := range []any{nil, got, (*testClass)(nil)} {
		if err := UnmarshalInto(testClassField("TestClass"), bad); err == nil {
			t.Errorf("UnmarshalInto(%T) succeeded, want error", bad)
		}
	}
}

func TestConcurrentResolution(t *testing.T) {
	r := NewRegistry()
	type payload []*[]*string

	g := taskgroup.New(nil)
	for i := range 32 {
		g.Go(func() error {
			s := fmt.Sprint(i)
			v := payload{&[]*string{&s}}
			f, err := r.Marshal(v)
			if err != nil {
				return err
			}
			back, err := UnmarshalFrom[payload](r, f)
			if err != nil {
				return err
			}
			if got := *(*back[0])[0]; got != s {
				return fmt.Errorf("round trip of %q returned %q", s, got)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

type shape interface {
	area() int64
}

type square int64

func (s square) area() int64 { return int64(s) * int64(s) }

func TestNilInterfaceElement(t *testing.T) {
	r := NewRegistry()
	err := RegisterIn(r, ConverterFuncs(
		func(s shape) (Field, error) { return NewInteger(KindInt64, s.area()) },
		func(f Field) (shape, error) { return nil, errors.New("not implemented") },
	))
	if err != nil {
		t.Fatalf("RegisterIn failed: %v", err)
	}

	got, err := r.Marshal([]shape{square(2), square(3)})
	if err != nil {
		t.Fatalf("Marshal([]shape) failed: %v", err)
	}
	want := mustField(Array(mustInt(KindInt64, 4), mustInt(KindInt64, 9)))
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Marshal([]shape) wrong (-got+want):\n%s", diff)
	}

	for _, v := range []any{[]shape{square(2), nil}, []*shape{new(shape)}} {
		_, err := r.Marshal(v)
		if diff := cmp.Diff(err, error(ValidationError{KindInvalid, "", "nil cdif.shape value"})); diff != "" {
			t.Errorf("Marshal(%#v) error wrong (-got+want):\n%s", v, diff)
		}
	}
}
