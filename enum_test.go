package cdif

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnumMapping(t *testing.T) {
	f, err := hashAlgorithms.MarshalCDIF(sha3_256)
	if err != nil {
		t.Fatalf("MarshalCDIF(sha3_256) failed: %v", err)
	}
	want := mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 3), "SHA3_256"))
	if diff := cmp.Diff(f, want); diff != "" {
		t.Errorf("MarshalCDIF(sha3_256) wrong (-got+want):\n%s", diff)
	}
	if got, want := hashAlgorithms.CaseName(sha2_384), "SHA2_384"; got != want {
		t.Errorf("CaseName(sha2_384) = %q, want %q", got, want)
	}

	if _, err := hashAlgorithms.MarshalCDIF(hashAlgorithm(42)); err == nil {
		t.Error("MarshalCDIF of a non-case succeeded")
	}

	tests := []struct {
		name    string
		in      Field
		want    hashAlgorithm
		wantErr error
	}{
		{
			name: "ok",
			in:   want,
			want: sha3_256,
		},
		{
			name: "no case name",
			in:   mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 1), "")),
			want: sha2_256,
		},
		{
			name:    "case name disagrees with raw value",
			in:      mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 3), "SHA2_256")),
			wantErr: UnknownEnumCaseError{"HashAlgorithm", "3", "SHA2_256"},
		},
		{
			name: "qualified type",
			in:   mustField(NewEnum("s.6e8c.HashAlgorithm", mustInt(KindUInt8, 4), "")),
			want: sha3_384,
		},
		{
			name:    "unknown case",
			in:      mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 99), "")),
			wantErr: UnknownEnumCaseError{"HashAlgorithm", "99", ""},
		},
		{
			name:    "wrong raw kind",
			in:      mustField(NewEnum("HashAlgorithm", mustInt(KindUInt16, 1), "")),
			wantErr: TypeMismatchError{"", "UInt8 raw value", KindUInt16},
		},
		{
			name:    "wrong enum",
			in:      mustField(NewEnum("SignatureAlgorithm", mustInt(KindUInt8, 1), "")),
			wantErr: StructureError{"HashAlgorithm", "SignatureAlgorithm"},
		},
		{
			name:    "not an enum",
			in:      mustInt(KindUInt8, 1),
			wantErr: TypeMismatchError{"", "Enum", KindUInt8},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hashAlgorithms.UnmarshalCDIF(tc.in)
			if diff := cmp.Diff(err, tc.wantErr); diff != "" {
				t.Fatalf("UnmarshalCDIF error wrong (-got+want):\n%s", diff)
			}
			if got != tc.want {
				t.Errorf("UnmarshalCDIF = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEnumRoundTripWithoutCaseName(t *testing.T) {
	// Enums decoded from JSON-Cadence carry no case name.
	in := mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 3), ""))
	v, err := Unmarshal[hashAlgorithm](in)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	back, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if diff := cmp.Diff(back, in); diff != "" {
		t.Errorf("enum round trip changed Field (-got+want):\n%s", diff)
	}
	if got := back.EnumCase(); got != "SHA3_256" {
		t.Errorf("re-marshaled case name = %q, want SHA3_256", got)
	}
}

func TestEnumMappingRead(t *testing.T) {
	in := mustField(Struct("S",
		Named("good", mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 2), ""))),
		Named("bad", mustField(NewEnum("HashAlgorithm", mustInt(KindUInt8, 7), ""))),
		Named("str", String("SHA2_256")),
	))

	got, err := Parse(in, "S", func(r *Reader) hashAlgorithm { return hashAlgorithms.Read(r, "good") })
	if err != nil || got != sha2_384 {
		t.Errorf("Read(good) = %v, %v, want %v, nil", got, err, sha2_384)
	}

	_, err = Parse(in, "S", func(r *Reader) hashAlgorithm { return hashAlgorithms.Read(r, "bad") })
	var unk UnknownEnumCaseError
	if !errors.As(err, &unk) {
		t.Errorf("Read(bad) error = %v, want UnknownEnumCaseError", err)
	}

	_, err = Parse(in, "S", func(r *Reader) hashAlgorithm { return hashAlgorithms.Read(r, "str") })
	if diff := cmp.Diff(err, error(TypeMismatchError{"str", "Enum", KindString})); diff != "" {
		t.Errorf("Read(str) error wrong (-got+want):\n%s", diff)
	}
}

func TestNewEnumMappingErrors(t *testing.T) {
	type e int
	tests := []struct {
		name    string
		typeID  string
		rawKind Kind
		cases   []EnumCase[e]
	}{
		{"empty type", "", KindUInt8, nil},
		{"non-integer raw", "E", KindString, nil},
		{"raw out of range", "E", KindUInt8, []EnumCase[e]{{256, "A", 1}}},
		{"duplicate raw", "E", KindUInt8, []EnumCase[e]{{1, "A", 1}, {1, "B", 2}}},
		{"duplicate value", "E", KindUInt8, []EnumCase[e]{{1, "A", 1}, {2, "B", 1}}},
		{"duplicate name", "E", KindUInt8, []EnumCase[e]{{1, "A", 1}, {2, "A", 2}}},
		{"empty name", "E", KindUInt8, []EnumCase[e]{{1, "", 1}}},
	}
	for _, tc := range tests {
		if _, err := NewEnumMapping(tc.typeID, tc.rawKind, tc.cases...); err == nil {
			t.Errorf("NewEnumMapping(%s) succeeded, want error", tc.name)
		}
	}
}
