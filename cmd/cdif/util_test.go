package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danderson/cdif"
	"github.com/danderson/cdif/cborcdc"
	"github.com/danderson/cdif/cdiftest"
	"github.com/google/go-cmp/cmp"
)

func TestPrintTree(t *testing.T) {
	f := cdiftest.Fixture(t, "testclass")
	var got strings.Builder
	printTree(&indenter{out: &got}, 0, "", f)
	want := strings.Join([]string{
		"Struct " + f.TypeID(),
		"  address: 0xe467b9dd11fa00df",
		"  balance: UFix64(1234.00000000)",
		"  hashAlgorithm: HashAlgorithm(UInt8(3))",
		"  isValid: true",
		"",
	}, "\n")
	if diff := cmp.Diff(got.String(), want); diff != "" {
		t.Errorf("wrong tree (-got+want):\n%s", diff)
	}
}

func TestPrintTreeContainers(t *testing.T) {
	inner := cdif.String("x")
	some, err := cdif.Some(inner)
	if err != nil {
		t.Fatal(err)
	}
	arr, err := cdif.Array(some, cdif.None())
	if err != nil {
		t.Fatal(err)
	}
	var got strings.Builder
	printTree(&indenter{out: &got}, 0, "", arr)
	want := strings.Join([]string{
		"Array (2 elements)",
		"  [0]: Some",
		`    "x"`,
		"  [1]: None",
		"",
	}, "\n")
	if diff := cmp.Diff(got.String(), want); diff != "" {
		t.Errorf("wrong tree (-got+want):\n%s", diff)
	}
}

func TestReadFields(t *testing.T) {
	dir := t.TempDir()
	var want []cdif.Field
	var stream []byte
	for _, name := range cdiftest.Fixtures() {
		f := cdiftest.Fixture(t, name)
		want = append(want, f)
		bs, err := cborcdc.Encode(f)
		if err != nil {
			t.Fatal(err)
		}
		stream = append(stream, bs...)
	}
	cborPath := filepath.Join(dir, "values.cbor")
	if err := os.WriteFile(cborPath, stream, 0600); err != nil {
		t.Fatal(err)
	}
	got, err := readFields(cborPath, "auto")
	if err != nil {
		t.Fatalf("reading CBOR stream: %v", err)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("wrong CBOR values (-got+want):\n%s", diff)
	}

	jsonPath := filepath.Join(dir, "value.json")
	if err := os.WriteFile(jsonPath, []byte(` {"type":"Bool","value":true}`), 0600); err != nil {
		t.Fatal(err)
	}
	got, err = readFields(jsonPath, "auto")
	if err != nil {
		t.Fatalf("reading JSON: %v", err)
	}
	if diff := cmp.Diff(got, []cdif.Field{cdif.Bool(true)}); diff != "" {
		t.Errorf("wrong JSON values (-got+want):\n%s", diff)
	}

	if _, err := readFields(jsonPath, "yaml"); err == nil {
		t.Error("readFields accepted an unknown format")
	}
}
