package cdif

import (
	"encoding/hex"
	"strings"
)

// AddressLength is the length in bytes of an account address.
const AddressLength = 8

// An Address is an account address.
type Address [AddressLength]byte

// AddressFromBytes returns the Address held in bs. bs must be exactly
// [AddressLength] bytes long, shorter inputs are not zero-padded.
func AddressFromBytes(bs []byte) (Address, error) {
	var ret Address
	if len(bs) != AddressLength {
		return ret, invalid(KindAddress, hex.EncodeToString(bs), "must be %d bytes, got %d", AddressLength, len(bs))
	}
	copy(ret[:], bs)
	return ret, nil
}

// ParseAddress parses a hex encoded address, with or without a "0x"
// prefix. The hex string must encode exactly [AddressLength] bytes.
func ParseAddress(s string) (Address, error) {
	h := strings.TrimPrefix(s, "0x")
	if len(h) != 2*AddressLength {
		return Address{}, invalid(KindAddress, s, "must be %d hex digits", 2*AddressLength)
	}
	bs, err := hex.DecodeString(h)
	if err != nil {
		return Address{}, invalid(KindAddress, s, "%v", err)
	}
	return AddressFromBytes(bs)
}

// MustParseAddress is like [ParseAddress], but panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Hex returns the address as 16 hex digits, without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// String returns the address as 16 hex digits prefixed with "0x".
func (a Address) String() string {
	return "0x" + a.Hex()
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}
