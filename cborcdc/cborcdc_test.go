package cborcdc_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/danderson/cdif"
	"github.com/danderson/cdif/cborcdc"
	"github.com/danderson/cdif/cdiftest"
	"github.com/google/go-cmp/cmp"
)

func TestFixtures(t *testing.T) {
	for _, name := range cdiftest.Fixtures() {
		t.Run(name, func(t *testing.T) {
			f := cdiftest.Fixture(t, name)
			bs, err := cborcdc.Encode(f)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := cborcdc.Decode(bs)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(got, f); diff != "" {
				t.Errorf("CBOR round trip changed Field (-got+want):\n%s", diff)
			}

			again, err := cborcdc.Encode(got)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(again, bs) {
				t.Errorf("encoding is not deterministic:\n%x\n%x", bs, again)
			}
		})
	}
}

func TestEncoding(t *testing.T) {
	tests := []struct {
		in   cdif.Field
		want string
	}{
		// {1: Void}
		{cdif.Void(), "a10101"},
		// {1: Bool, 4: true}
		{cdif.Bool(true), "a2010204f5"},
		// {1: Bool}
		{cdif.Bool(false), "a10102"},
		// {1: String, 2: "hi"}
		{cdif.String("hi"), "a20103026268 69"},
	}
	for _, tc := range tests {
		got, err := cborcdc.Encode(tc.in)
		if err != nil {
			t.Errorf("Encode(%s) failed: %v", tc.in, err)
			continue
		}
		want, err := hex.DecodeString(string(bytes.ReplaceAll([]byte(tc.want), []byte(" "), nil)))
		if err != nil {
			t.Fatalf("bad test hex %q: %v", tc.want, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Encode(%s) = %x, want %x", tc.in, got, want)
		}
	}
}

func TestEnumCasePreserved(t *testing.T) {
	raw := cdif.MustMarshal(uint8(3))
	in, err := cdif.NewEnum("HashAlgorithm", raw, "SHA3_256")
	if err != nil {
		t.Fatal(err)
	}
	bs, err := cborcdc.Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := cborcdc.Decode(bs)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.EnumCase() != "SHA3_256" {
		t.Errorf("decoded case name = %q, want SHA3_256", got.EnumCase())
	}
}

func TestDecodeErrors(t *testing.T) {
	// encode builds raw CBOR maps, bypassing Field validation.
	encode := func(m map[int]any) []byte {
		bs, err := testEncMode.Marshal(m)
		if err != nil {
			t.Fatalf("encoding test input: %v", err)
		}
		return bs
	}
	tooBig := new(big.Int).Lsh(big.NewInt(1), 64)

	tests := []struct {
		name string
		in   []byte
	}{
		{"garbage", []byte{0xff}},
		{"unknown field", encode(map[int]any{1: int(cdif.KindVoid), 99: 1})},
		{"unknown kind", encode(map[int]any{1: 200})},
		{"short address", encode(map[int]any{1: int(cdif.KindAddress), 3: []byte{1, 2}})},
		{"integer without value", encode(map[int]any{1: int(cdif.KindUInt8)})},
		{"integer out of range", encode(map[int]any{1: int(cdif.KindUInt8), 5: 256})},
		{"ufix64 out of range", encode(map[int]any{1: int(cdif.KindUFix64), 5: tooBig})},
		{"path with one part", encode(map[int]any{1: int(cdif.KindPath), 6: []string{"public"}})},
		{"optional with two values", encode(map[int]any{1: int(cdif.KindOptional), 7: []any{
			map[int]any{1: int(cdif.KindVoid)},
			map[int]any{1: int(cdif.KindVoid)},
		}})},
		{"composite names mismatch", encode(map[int]any{1: int(cdif.KindStruct), 2: "S", 8: []string{"a"}})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if f, err := cborcdc.Decode(tc.in); err == nil {
				t.Errorf("Decode(%x) = %s, want error", tc.in, f)
			}
		})
	}
}

func TestStream(t *testing.T) {
	in := []cdif.Field{
		cdif.Bool(true),
		cdiftest.Fixture(t, "deposit"),
		cdif.None(),
	}
	var buf bytes.Buffer
	enc := cborcdc.NewEncoder(&buf)
	for _, f := range in {
		if err := enc.Encode(f); err != nil {
			t.Fatalf("Encode(%s) failed: %v", f, err)
		}
	}

	dec := cborcdc.NewDecoder(&buf)
	var got []cdif.Field
	for {
		f, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		got = append(got, f)
	}
	if diff := cmp.Diff(got, in); diff != "" {
		t.Errorf("stream round trip wrong (-got+want):\n%s", diff)
	}
}

func TestDiagnose(t *testing.T) {
	bs, err := cborcdc.Encode(cdif.Bool(true))
	if err != nil {
		t.Fatal(err)
	}
	got, err := cborcdc.Diagnose(bs)
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if want := "{1: 2, 4: true}"; got != want {
		t.Errorf("Diagnose = %q, want %q", got, want)
	}
}

func TestEncodeInvalidUTF8(t *testing.T) {
	path, err := cdif.NewPath(cdif.Path{Domain: "public", Identifier: "r\xff"})
	if err != nil {
		t.Fatal(err)
	}
	some, err := cdif.Some(cdif.String("a\xffb"))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []cdif.Field{cdif.String("\xff"), path, some} {
		bs, err := cborcdc.Encode(f)
		var verr cdif.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Encode(%s) = %x, %v, want ValidationError", f, bs, err)
		}
	}

	var buf bytes.Buffer
	if err := cborcdc.NewEncoder(&buf).Encode(cdif.String("\xff")); err == nil {
		t.Error("Encoder.Encode accepted invalid UTF-8")
	}
	if buf.Len() != 0 {
		t.Errorf("Encoder wrote %x for a rejected Field", buf.Bytes())
	}
}
