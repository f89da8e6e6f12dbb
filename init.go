package cdif

import (
	"math/big"
)

func registerBuiltins(r *Registry) {
	mustRegister(r, ConverterFuncs(
		func(v bool) (Field, error) { return Bool(v), nil },
		func(f Field) (bool, error) { return expectKind(f, KindBool, Field.AsBool) },
	))
	mustRegister(r, ConverterFuncs(
		func(v string) (Field, error) { return String(v), nil },
		func(f Field) (string, error) { return expectKind(f, KindString, Field.AsString) },
	))
	mustRegister(r, ConverterFuncs(
		func(v []byte) (Field, error) { return Bytes(v), nil },
		func(f Field) ([]byte, error) { return expectKind(f, KindBytes, Field.AsBytes) },
	))
	mustRegister(r, ConverterFuncs(
		func(v Address) (Field, error) { return NewAddress(v), nil },
		func(f Field) (Address, error) { return expectKind(f, KindAddress, Field.AsAddress) },
	))
	mustRegister(r, ConverterFuncs(
		NewPath,
		func(f Field) (Path, error) { return expectKind(f, KindPath, Field.AsPath) },
	))
	mustRegister(r, ConverterFuncs(
		NewCapability,
		func(f Field) (Capability, error) { return expectKind(f, KindCapability, Field.AsCapability) },
	))
	mustRegister(r, ConverterFuncs(
		func(v Field) (Field, error) { return v, nil },
		func(f Field) (Field, error) { return f, nil },
	))
	mustRegister(r, ConverterFuncs(
		func(v *big.Int) (Field, error) { return NewInt(KindInt, v) },
		func(f Field) (*big.Int, error) {
			v, ok := f.AsBigInt()
			if !ok {
				return nil, mismatch("", "integer", f.kind)
			}
			return v, nil
		},
	))

	registerInteger[int](r, KindInt)
	registerInteger[int8](r, KindInt8)
	registerInteger[int16](r, KindInt16)
	registerInteger[int32](r, KindInt32)
	registerInteger[int64](r, KindInt64)
	registerInteger[uint](r, KindUInt)
	registerInteger[uint8](r, KindUInt8)
	registerInteger[uint16](r, KindUInt16)
	registerInteger[uint32](r, KindUInt32)
	registerInteger[uint64](r, KindUInt64)
}

func mustRegister[T any](r *Registry, c Converter[T]) {
	if err := RegisterIn(r, c); err != nil {
		panic(err)
	}
}

// registerInteger registers a converter between T and integer Fields
// of kind k. Unmarshaling accepts any integer kind, provided the
// value fits in T.
func registerInteger[T Integer](r *Registry, k Kind) {
	mustRegister(r, ConverterFuncs(
		func(v T) (Field, error) { return NewInteger(k, v) },
		func(f Field) (T, error) {
			v, ok := f.AsBigInt()
			if !ok {
				return 0, mismatch("", k, f.kind)
			}
			ret, ok := fromBig[T](v)
			if !ok {
				return 0, mismatch("", k, f.kind)
			}
			return ret, nil
		},
	))
}

func expectKind[T any](f Field, k Kind, get func(Field) (T, bool)) (T, error) {
	v, ok := get(f)
	if !ok {
		var zero T
		return zero, mismatch("", k, f.kind)
	}
	return v, nil
}
