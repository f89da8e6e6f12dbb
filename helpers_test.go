package cdif

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// hashAlgorithm is a native enum mirroring Cadence's HashAlgorithm.
type hashAlgorithm uint8

const (
	sha2_256 hashAlgorithm = iota + 1
	sha2_384
	sha3_256
	sha3_384
)

var hashAlgorithms = MustEnumMapping("HashAlgorithm", KindUInt8,
	EnumCase[hashAlgorithm]{1, "SHA2_256", sha2_256},
	EnumCase[hashAlgorithm]{2, "SHA2_384", sha2_384},
	EnumCase[hashAlgorithm]{3, "SHA3_256", sha3_256},
	EnumCase[hashAlgorithm]{4, "SHA3_384", sha3_384},
)

// testClass is the native counterpart of the TestClass struct used
// in script results.
type testClass struct {
	Address       Address
	Balance       decimal.Decimal
	HashAlgorithm hashAlgorithm
	IsValid       bool
}

type testClassConverter struct{}

func (testClassConverter) MarshalCDIF(v testClass) (Field, error) {
	return Build(func(b *Builder) Field {
		return b.Struct("TestClass",
			Named("address", b.Address(v.Address)),
			Named("balance", b.UFix64(v.Balance)),
			Named("hashAlgorithm", hashAlgorithms.Build(b, v.HashAlgorithm)),
			Named("isValid", b.Bool(v.IsValid)),
		)
	})
}

func (testClassConverter) UnmarshalCDIF(f Field) (testClass, error) {
	return Parse(f, "TestClass", func(r *Reader) testClass {
		return testClass{
			Address:       r.Address("address"),
			Balance:       r.Decimal("balance"),
			HashAlgorithm: hashAlgorithms.Read(r, "hashAlgorithm"),
			IsValid:       r.Bool("isValid"),
		}
	})
}

func init() {
	MustRegister[testClass](testClassConverter{})
	MustRegister[hashAlgorithm](hashAlgorithms)
}

// selfConverting implements Marshaler and Unmarshaler, and so needs
// no registration.
type selfConverting struct {
	Name  string
	Count uint32
	Tags  []string
}

func (s selfConverting) MarshalCDIF() (Field, error) {
	return Build(func(b *Builder) Field {
		return b.Struct("A.0000000000000001.Things.Thing",
			Named("name", b.String(s.Name)),
			Named("count", BuildInt(b, KindUInt32, s.Count)),
			Named("tags", BuildSlice(b, s.Tags)),
		)
	})
}

func (s *selfConverting) UnmarshalCDIF(f Field) error {
	v, err := Parse(f, "Things.Thing", func(r *Reader) selfConverting {
		return selfConverting{
			Name:  r.String("name"),
			Count: ReadInt[uint32](r, "count"),
			Tags:  ReadSlice[string](r, "tags"),
		}
	})
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// unregistered has no converter.
type unregistered struct {
	A int
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustField(f Field, err error) Field {
	if err != nil {
		panic(err)
	}
	return f
}

func mustInt(k Kind, v int64) Field {
	return mustField(NewInt(k, big.NewInt(v)))
}

// testClassField returns the Field a script returns for a TestClass
// value.
func testClassField(typeID string) Field {
	return mustField(Struct(typeID,
		Named("address", NewAddress(MustParseAddress("e467b9dd11fa00df"))),
		Named("balance", mustField(UFix64(mustDecimal("1234.00000000")))),
		Named("hashAlgorithm", mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 3), "SHA3_256"))),
		Named("isValid", Bool(true)),
	))
}
