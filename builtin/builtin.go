// Package builtin provides native types for Cadence's built-in
// composite and enum types.
//
// Importing the package registers converters for its types with
// [cdif.DefaultRegistry].
package builtin

import (
	"fmt"

	"github.com/danderson/cdif"
)

// HashAlgorithm is Cadence's HashAlgorithm enum.
type HashAlgorithm uint8

const (
	SHA2_256 HashAlgorithm = iota + 1
	SHA2_384
	SHA3_256
	SHA3_384
	KMAC128_BLS_BLS12_381
	KECCAK_256
)

// HashAlgorithms maps between HashAlgorithm and its Enum Fields.
var HashAlgorithms = cdif.MustEnumMapping("HashAlgorithm", cdif.KindUInt8,
	cdif.EnumCase[HashAlgorithm]{Raw: 1, Name: "SHA2_256", Value: SHA2_256},
	cdif.EnumCase[HashAlgorithm]{Raw: 2, Name: "SHA2_384", Value: SHA2_384},
	cdif.EnumCase[HashAlgorithm]{Raw: 3, Name: "SHA3_256", Value: SHA3_256},
	cdif.EnumCase[HashAlgorithm]{Raw: 4, Name: "SHA3_384", Value: SHA3_384},
	cdif.EnumCase[HashAlgorithm]{Raw: 5, Name: "KMAC128_BLS_BLS12_381", Value: KMAC128_BLS_BLS12_381},
	cdif.EnumCase[HashAlgorithm]{Raw: 6, Name: "KECCAK_256", Value: KECCAK_256},
)

func (h HashAlgorithm) String() string {
	if n := HashAlgorithms.CaseName(h); n != "" {
		return n
	}
	return fmt.Sprintf("HashAlgorithm(%d)", uint8(h))
}

// SignatureAlgorithm is Cadence's SignatureAlgorithm enum.
type SignatureAlgorithm uint8

const (
	ECDSA_P256 SignatureAlgorithm = iota + 1
	ECDSA_secp256k1
	BLS_BLS12_381
)

// SignatureAlgorithms maps between SignatureAlgorithm and its Enum
// Fields.
var SignatureAlgorithms = cdif.MustEnumMapping("SignatureAlgorithm", cdif.KindUInt8,
	cdif.EnumCase[SignatureAlgorithm]{Raw: 1, Name: "ECDSA_P256", Value: ECDSA_P256},
	cdif.EnumCase[SignatureAlgorithm]{Raw: 2, Name: "ECDSA_secp256k1", Value: ECDSA_secp256k1},
	cdif.EnumCase[SignatureAlgorithm]{Raw: 3, Name: "BLS_BLS12_381", Value: BLS_BLS12_381},
)

func (s SignatureAlgorithm) String() string {
	if n := SignatureAlgorithms.CaseName(s); n != "" {
		return n
	}
	return fmt.Sprintf("SignatureAlgorithm(%d)", uint8(s))
}

// PublicKey is Cadence's PublicKey struct.
type PublicKey struct {
	PublicKey          []byte
	SignatureAlgorithm SignatureAlgorithm
}

// MarshalCDIF implements [cdif.Marshaler].
func (k PublicKey) MarshalCDIF() (cdif.Field, error) {
	return cdif.Build(func(b *cdif.Builder) cdif.Field {
		return b.Struct("PublicKey",
			cdif.Named("publicKey", cdif.BuildSlice(b, k.PublicKey)),
			cdif.Named("signatureAlgorithm", SignatureAlgorithms.Build(b, k.SignatureAlgorithm)),
		)
	})
}

// UnmarshalCDIF implements [cdif.Unmarshaler].
func (k *PublicKey) UnmarshalCDIF(f cdif.Field) error {
	v, err := cdif.Parse(f, "PublicKey", func(r *cdif.Reader) PublicKey {
		return PublicKey{
			PublicKey:          cdif.ReadSlice[byte](r, "publicKey"),
			SignatureAlgorithm: SignatureAlgorithms.Read(r, "signatureAlgorithm"),
		}
	})
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func init() {
	cdif.MustRegister[HashAlgorithm](HashAlgorithms)
	cdif.MustRegister[SignatureAlgorithm](SignatureAlgorithms)
}
