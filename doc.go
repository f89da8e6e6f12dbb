// Package cdif converts between native Go values and Fields, the
// tagged-union values of the Cadence Data Interchange Format used to
// pass arguments to and results from smart contract scripts.
//
// # Fields
//
// A [Field] is an immutable value of one of the kinds enumerated by
// [Kind]: Void, Bool, String, Bytes, Address, the integer kinds
// (Int, Int8 to Int256, UInt, UInt8 to UInt256, Word8 to Word64), the
// fixed-point kinds UFix64 and Fix64, Path, Capability, Enum,
// Optional, Array, Dictionary, and the composite kinds Struct,
// Resource, Event and Contract.
//
// Fields are built with the package level constructors ([Bool],
// [UFix64], [NewComposite]...), which validate their input and never
// clamp, pad or round. Fixed-point values carry exactly
// [FixedPointScale] fractional digits: a decimal with more digits is
// rejected with a [ValidationError].
//
// Fields are inspected with accessor methods ([Field.Kind],
// [Field.AsBool], [Field.Lookup]...), which report whether the
// Field is of the requested kind instead of panicking.
//
// # Builders and Readers
//
// Converters are usually written as a pair of declarative blocks: a
// [Builder] block that assembles a composite from a native value, and
// a [Reader] block that extracts fields by name to reassemble the
// native value.
//
//	func (testClassConverter) MarshalCDIF(v TestClass) (cdif.Field, error) {
//		return cdif.Build(func(b *cdif.Builder) cdif.Field {
//			return b.Struct("TestClass",
//				cdif.Named("address", b.Address(v.Address)),
//				cdif.Named("balance", b.UFix64(v.Balance)),
//				cdif.Named("hashAlgorithm", hashAlgorithms.Build(b, v.HashAlgorithm)),
//				cdif.Named("isValid", b.Bool(v.IsValid)),
//			)
//		})
//	}
//
//	func (testClassConverter) UnmarshalCDIF(f cdif.Field) (TestClass, error) {
//		return cdif.Parse(f, "TestClass", func(r *cdif.Reader) TestClass {
//			return TestClass{
//				Address:       r.Address("address"),
//				Balance:       r.Decimal("balance"),
//				HashAlgorithm: hashAlgorithms.Read(r, "hashAlgorithm"),
//				IsValid:       r.Bool("isValid"),
//			}
//		})
//	}
//
// Both blocks record the first error and return it once the block
// completes. A failed Parse never returns a partially populated
// value.
//
// # Converters and dispatch
//
// [Marshal] and [Unmarshal] are the entry points for callers that
// hold a native value or a Field. They look up the [Converter]
// associated with the native type in [DefaultRegistry]:
//
//   - Converters registered explicitly, usually from an init function
//     with [MustRegister]. [EnumMapping] is a Converter, so enum types
//     can be registered directly.
//   - Types whose value implements [Marshaler] and whose pointer
//     implements [Unmarshaler] are associated with their own methods
//     automatically.
//   - Pointer and slice types are derived from their element type:
//     *T converts to and from Optional, []T to and from Array.
//
// bool, string, []byte, fixed width Go integers, *big.Int, [Address],
// [Path], [Capability] and [Field] have builtin converters.
//
// A type can be associated with a converter only once. Registering a
// type twice fails with a [ConflictError].
//
// Marshal and Unmarshal fail with a [ConverterNotFoundError] when no
// converter is available for a type.
package cdif
