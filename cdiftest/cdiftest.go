// Package cdiftest provides fixtures and assertions for testing
// converters.
package cdiftest

import (
	"bytes"
	"embed"
	"io/fs"
	"math/big"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/danderson/cdif"
	"github.com/danderson/cdif/jsoncdc"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// Fixtures returns the names of the available fixtures.
func Fixtures() []string {
	ents, err := fs.ReadDir(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	var ret []string
	for _, ent := range ents {
		ret = append(ret, strings.TrimSuffix(ent.Name(), ".json"))
	}
	return ret
}

// Fixture returns the named fixture, a script result as returned by
// an access node. It causes an immediate test failure with t.Fatal
// if the fixture doesn't exist or fails to decode.
//
// Available fixtures are:
//
//   - testclass: a TestClass struct, as returned by a script.
//   - publickey: a PublicKey struct.
//   - deposit: a TokensDeposited event using most Field kinds.
func Fixture(t testing.TB, name string) cdif.Field {
	t.Helper()
	bs, err := fixtures.ReadFile(path.Join("fixtures", name+".json"))
	if err != nil {
		t.Fatalf("reading fixture %q: %v", name, err)
	}
	f, err := jsoncdc.Decode(bs)
	if err != nil {
		t.Fatalf("decoding fixture %q: %v", name, err)
	}
	return f
}

// MustDecodeJSON returns the Field encoded in JSON-Cadence by s. It
// causes an immediate test failure with t.Fatal if s doesn't decode.
func MustDecodeJSON(t testing.TB, s string) cdif.Field {
	t.Helper()
	f, err := jsoncdc.Decode([]byte(s))
	if err != nil {
		t.Fatalf("decoding JSON-Cadence %q: %v", s, err)
	}
	return f
}

// valueOptions are the cmp options RoundTrip always uses. Nil and
// empty slices both marshal to an empty Array, and big integers
// compare by value.
var valueOptions = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Comparer(func(a, b *big.Int) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
}

// RoundTrip marshals v, unmarshals the result back to a T, and
// reports a test error if the result differs from v. It returns the
// intermediate Field.
//
// Values are compared with cmp, treating nil and empty slices as
// equal and comparing *big.Int by value. opts are additional cmp
// options.
func RoundTrip[T any](t testing.TB, v T, opts ...cmp.Option) cdif.Field {
	t.Helper()
	f, err := cdif.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", v, err)
	}
	got, err := cdif.Unmarshal[T](f)
	if err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", f, err)
	}
	if diff := cmp.Diff(got, v, append(slices.Clone(valueOptions), opts...)...); diff != "" {
		t.Errorf("round trip through %s changed value (-got+want):\n%s", f, diff)
	}
	return f
}

// FieldRoundTrip unmarshals f to a T, marshals the result back to a
// Field, and reports a test error if the result differs from f. It
// returns the intermediate T.
func FieldRoundTrip[T any](t testing.TB, f cdif.Field) T {
	t.Helper()
	v, err := cdif.Unmarshal[T](f)
	if err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", f, err)
	}
	got, err := cdif.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", v, err)
	}
	if diff := cmp.Diff(got, f); diff != "" {
		t.Errorf("round trip through %v changed Field (-got+want):\n%s", v, diff)
	}
	return v
}

// JSONRoundTrip encodes f to JSON-Cadence, decodes it, and reports a
// test error if re-encoding the result doesn't produce the same JSON.
func JSONRoundTrip(t testing.TB, f cdif.Field) {
	t.Helper()
	want, err := jsoncdc.Encode(f)
	if err != nil {
		t.Fatalf("Encode(%s) failed: %v", f, err)
	}
	back, err := jsoncdc.Decode(want)
	if err != nil {
		t.Fatalf("Decode(%s) failed: %v", want, err)
	}
	got, err := jsoncdc.Encode(back)
	if err != nil {
		t.Fatalf("Encode(%s) failed: %v", back, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("JSON round trip changed encoding:\n got: %s\nwant: %s", got, want)
	}
}
