package cdif_test

import (
	"fmt"

	"github.com/danderson/cdif"
	"github.com/shopspring/decimal"
)

type Account struct {
	Address cdif.Address
	Balance decimal.Decimal
	Keys    []uint32
	Label   *string
}

func (a Account) MarshalCDIF() (cdif.Field, error) {
	return cdif.Build(func(b *cdif.Builder) cdif.Field {
		return b.Struct("Account",
			cdif.Named("address", b.Address(a.Address)),
			cdif.Named("balance", b.UFix64(a.Balance)),
			cdif.Named("keys", cdif.BuildSlice(b, a.Keys)),
			cdif.Named("label", cdif.BuildOptional(b, a.Label)),
		)
	})
}

func (a *Account) UnmarshalCDIF(f cdif.Field) error {
	v, err := cdif.Parse(f, "Account", func(r *cdif.Reader) Account {
		return Account{
			Address: r.Address("address"),
			Balance: r.Decimal("balance"),
			Keys:    cdif.ReadSlice[uint32](r, "keys"),
			Label:   cdif.ReadOptional[string](r, "label"),
		}
	})
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func Example() {
	acct := Account{
		Address: cdif.MustParseAddress("0xf8d6e0586b0a20c7"),
		Balance: decimal.RequireFromString("100.5"),
		Keys:    []uint32{0, 1},
	}
	f, err := cdif.Marshal(acct)
	if err != nil {
		panic(err)
	}
	fmt.Println(f)

	back, err := cdif.Unmarshal[Account](f)
	if err != nil {
		panic(err)
	}
	fmt.Println(back.Balance, back.Label == nil)
	// Output:
	// Struct Account{address: 0xf8d6e0586b0a20c7, balance: UFix64(100.50000000), keys: [UInt32(0), UInt32(1)], label: None}
	// 100.5 true
}

func ExampleParse() {
	f, err := cdif.Struct("A.0ae53cb6e3f42a79.FlowToken.Vault",
		cdif.Named("balance", cdif.MustMarshal(uint64(7))),
	)
	if err != nil {
		panic(err)
	}

	_, err = cdif.Parse(f, "FlowToken.Vault", func(r *cdif.Reader) string {
		return r.String("owner")
	})
	fmt.Println(err)
	// Output:
	// composite A.0ae53cb6e3f42a79.FlowToken.Vault has no field "owner"
}

func ExampleBuild() {
	_, err := cdif.Build(func(b *cdif.Builder) cdif.Field {
		return b.Struct("Payment",
			cdif.Named("amount", b.UFix64(decimal.RequireFromString("0.123456789"))),
		)
	})
	fmt.Println(err)
	// Output:
	// invalid UFix64 0.123456789: more than 8 fractional digits
}
