package cdif

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// FixedPointScale is the number of fractional decimal digits carried
// by the fixed-point kinds.
const FixedPointScale = 8

var (
	fix64Min  = big.NewInt(math.MinInt64)
	fix64Max  = big.NewInt(math.MaxInt64)
	ufix64Max = new(big.Int).SetUint64(math.MaxUint64)
	bigZero   = big.NewInt(0)
)

// integerRange returns the inclusive bounds of integer kind k. A nil
// bound is unbounded.
func integerRange(k Kind) (lo, hi *big.Int) {
	bits, bounded := integerBits[k]
	switch {
	case !bounded && k.IsSigned():
		return nil, nil
	case !bounded:
		return bigZero, nil
	case k.IsSigned():
		hi = new(big.Int).Lsh(big.NewInt(1), bits-1)
		lo = new(big.Int).Neg(hi)
		hi.Sub(hi, big.NewInt(1))
		return lo, hi
	default:
		hi = new(big.Int).Lsh(big.NewInt(1), bits)
		hi.Sub(hi, big.NewInt(1))
		return bigZero, hi
	}
}

func checkInteger(k Kind, v *big.Int) error {
	if !k.IsInteger() {
		return invalid(k, v, "not an integer kind")
	}
	if v == nil {
		return invalid(k, nil, "nil integer")
	}
	lo, hi := integerRange(k)
	if lo != nil && v.Cmp(lo) < 0 {
		return invalid(k, v, "below minimum %s", lo)
	}
	if hi != nil && v.Cmp(hi) > 0 {
		return invalid(k, v, "above maximum %s", hi)
	}
	return nil
}

// scaleDecimal converts d to the scaled integer representation of
// fixed-point kind k. Values with more than FixedPointScale
// fractional digits are rejected rather than rounded.
func scaleDecimal(k Kind, d decimal.Decimal) (*big.Int, error) {
	if d.Exponent() < -FixedPointScale {
		return nil, invalid(k, d, "more than %d fractional digits", FixedPointScale)
	}
	scaled := d.Shift(FixedPointScale).BigInt()
	if err := checkScaled(k, scaled); err != nil {
		return nil, invalid(k, d, "out of range")
	}
	return scaled, nil
}

func checkScaled(k Kind, scaled *big.Int) error {
	lo, hi := fix64Min, fix64Max
	if k == KindUFix64 {
		lo, hi = bigZero, ufix64Max
	}
	if scaled.Cmp(lo) < 0 || scaled.Cmp(hi) > 0 {
		return invalid(k, scaled, "scaled value out of range")
	}
	return nil
}

func unscale(scaled *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(scaled, -FixedPointScale)
}

// formatFixed renders a scaled fixed-point value with exactly
// FixedPointScale fractional digits.
func formatFixed(scaled *big.Int) string {
	return unscale(scaled).StringFixed(FixedPointScale)
}
