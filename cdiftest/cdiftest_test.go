package cdiftest_test

import (
	"math/big"
	"testing"

	"github.com/danderson/cdif"
	"github.com/danderson/cdif/cdiftest"
	"github.com/google/go-cmp/cmp"
)

func TestFixtures(t *testing.T) {
	names := cdiftest.Fixtures()
	if diff := cmp.Diff(names, []string{"deposit", "publickey", "testclass"}); diff != "" {
		t.Errorf("wrong fixtures (-got+want):\n%s", diff)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f := cdiftest.Fixture(t, name)
			if !f.Kind().IsComposite() {
				t.Errorf("fixture %q is a %s, want a composite", name, f.Kind())
			}
			cdiftest.JSONRoundTrip(t, f)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	f := cdiftest.RoundTrip(t, []uint16{1, 2, 3})
	want := cdiftest.MustDecodeJSON(t, `{"type":"Array","value":[
		{"type":"UInt16","value":"1"},
		{"type":"UInt16","value":"2"},
		{"type":"UInt16","value":"3"}]}`)
	if diff := cmp.Diff(f, want); diff != "" {
		t.Errorf("RoundTrip Field wrong (-got+want):\n%s", diff)
	}

	got := cdiftest.FieldRoundTrip[[]cdif.Address](t, cdiftest.MustDecodeJSON(t, `{"type":"Array","value":[
		{"type":"Address","value":"0x0000000000000001"}]}`))
	if diff := cmp.Diff(got, []cdif.Address{cdif.MustParseAddress("0000000000000001")}); diff != "" {
		t.Errorf("FieldRoundTrip value wrong (-got+want):\n%s", diff)
	}
}

func TestEnumCaseNames(t *testing.T) {
	raw := cdif.MustMarshal(uint8(1))
	named, err := cdif.NewEnum("E", raw, "A")
	if err != nil {
		t.Fatal(err)
	}
	unnamed, err := cdif.NewEnum("E", raw, "")
	if err != nil {
		t.Fatal(err)
	}
	// Case names are not carried by every wire format, and are not
	// part of the enum's value.
	if diff := cmp.Diff(named, unnamed); diff != "" {
		t.Errorf("enums differing only by case name compare unequal (-got+want):\n%s", diff)
	}
}

// supply converts itself, and has the field types generated code
// uses for wide integers and arrays.
type supply struct {
	Total   *big.Int
	Holders []string
}

func (s supply) MarshalCDIF() (cdif.Field, error) {
	return cdif.Build(func(b *cdif.Builder) cdif.Field {
		return b.Struct("Supply",
			cdif.Named("total", b.Int(cdif.KindUInt256, s.Total)),
			cdif.Named("holders", cdif.BuildSlice(b, s.Holders)),
		)
	})
}

func (s *supply) UnmarshalCDIF(f cdif.Field) error {
	v, err := cdif.Parse(f, "Supply", func(r *cdif.Reader) (ret supply) {
		ret.Total = r.Int("total", cdif.KindUInt256)
		ret.Holders = cdif.ReadSlice[string](r, "holders")
		return ret
	})
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func TestRoundTripValues(t *testing.T) {
	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	if !ok {
		t.Fatal("bad test integer")
	}
	tests := []supply{
		{Total: big.NewInt(99), Holders: []string{"a", "b"}},
		{Total: huge},
		{Total: big.NewInt(0), Holders: []string{}},
	}
	for _, v := range tests {
		cdiftest.RoundTrip(t, v)
	}
}
