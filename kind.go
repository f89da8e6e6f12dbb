package cdif

import (
	"fmt"

	"github.com/creachadair/mds/mapset"
)

// A Kind identifies the variant of a [Field].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindString
	KindBytes
	KindAddress

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindInt256

	KindUInt
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUInt128
	KindUInt256

	KindWord8
	KindWord16
	KindWord32
	KindWord64

	KindFix64
	KindUFix64

	KindPath
	KindCapability

	KindEnum
	KindOptional
	KindArray
	KindDictionary

	KindStruct
	KindResource
	KindEvent
	KindContract
)

var (
	// kindToName maps each Kind to its JSON-Cadence type name.
	kindToName = map[Kind]string{
		KindVoid:       "Void",
		KindBool:       "Bool",
		KindString:     "String",
		KindBytes:      "Bytes",
		KindAddress:    "Address",
		KindInt:        "Int",
		KindInt8:       "Int8",
		KindInt16:      "Int16",
		KindInt32:      "Int32",
		KindInt64:      "Int64",
		KindInt128:     "Int128",
		KindInt256:     "Int256",
		KindUInt:       "UInt",
		KindUInt8:      "UInt8",
		KindUInt16:     "UInt16",
		KindUInt32:     "UInt32",
		KindUInt64:     "UInt64",
		KindUInt128:    "UInt128",
		KindUInt256:    "UInt256",
		KindWord8:      "Word8",
		KindWord16:     "Word16",
		KindWord32:     "Word32",
		KindWord64:     "Word64",
		KindFix64:      "Fix64",
		KindUFix64:     "UFix64",
		KindPath:       "Path",
		KindCapability: "Capability",
		KindEnum:       "Enum",
		KindOptional:   "Optional",
		KindArray:      "Array",
		KindDictionary: "Dictionary",
		KindStruct:     "Struct",
		KindResource:   "Resource",
		KindEvent:      "Event",
		KindContract:   "Contract",
	}

	// nameToKind is the inverse of kindToName.
	nameToKind = func() map[string]Kind {
		ret := make(map[string]Kind, len(kindToName))
		for k, n := range kindToName {
			ret[n] = k
		}
		return ret
	}()

	// integerBits is the width in bits of the bounded integer
	// kinds. Int and UInt are unbounded and absent.
	integerBits = map[Kind]uint{
		KindInt8:    8,
		KindInt16:   16,
		KindInt32:   32,
		KindInt64:   64,
		KindInt128:  128,
		KindInt256:  256,
		KindUInt8:   8,
		KindUInt16:  16,
		KindUInt32:  32,
		KindUInt64:  64,
		KindUInt128: 128,
		KindUInt256: 256,
		KindWord8:   8,
		KindWord16:  16,
		KindWord32:  32,
		KindWord64:  64,
	}

	signedKinds = mapset.New(
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindInt128, KindInt256,
	)

	integerKinds = mapset.New(
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindInt128, KindInt256,
		KindUInt, KindUInt8, KindUInt16, KindUInt32, KindUInt64, KindUInt128, KindUInt256,
		KindWord8, KindWord16, KindWord32, KindWord64,
	)

	fixedPointKinds = mapset.New(KindFix64, KindUFix64)

	compositeKinds = mapset.New(KindStruct, KindResource, KindEvent, KindContract)

	// pathDomains is the set of valid Path domains.
	pathDomains = mapset.New("storage", "private", "public")
)

// String returns the JSON-Cadence type name of k.
func (k Kind) String() string {
	if k == KindInvalid {
		return "Invalid"
	}
	if n, ok := kindToName[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind whose JSON-Cadence type name is name.
func ParseKind(name string) (Kind, error) {
	if k, ok := nameToKind[name]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("unknown kind %q", name)
}

// IsInteger reports whether k is one of the integer kinds.
func (k Kind) IsInteger() bool { return integerKinds.Has(k) }

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool { return signedKinds.Has(k) }

// IsFixedPoint reports whether k is one of the fixed-point decimal
// kinds.
func (k Kind) IsFixedPoint() bool { return fixedPointKinds.Has(k) }

// IsNumeric reports whether k is an integer or fixed-point kind.
func (k Kind) IsNumeric() bool { return k.IsInteger() || k.IsFixedPoint() }

// IsComposite reports whether k is a composite kind (Struct,
// Resource, Event or Contract).
func (k Kind) IsComposite() bool { return compositeKinds.Has(k) }
