package amm

import (
	"math"

	"github.com/holiman/uint256"
)

// MulDivFloor computes floor(a*b/c) with a 256-bit intermediate product, so
// the multiplication of two reserve-scale values can never wrap. It returns
// ErrArithmeticOverflow when c is zero or the quotient does not fit uint64.
func MulDivFloor(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrArithmeticOverflow
	}

	num := new(uint256.Int).Mul(
		uint256.NewInt(a),
		uint256.NewInt(b),
	)
	q := num.Div(num, uint256.NewInt(c))
	if !q.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return q.Uint64(), nil
}

// CheckedAdd returns a+b or ErrArithmeticOverflow instead of wrapping.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

// CheckedSub returns a-b or ErrArithmeticUnderflow instead of wrapping.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticUnderflow
	}
	return a - b, nil
}

// GeometricMean returns floor(sqrt(a*b)) computed entirely in integers.
// The 128-bit product is square-rooted with uint256's integer Newton
// iteration, so the result is exact for the full uint64 range (a float64
// sqrt loses precision past 2^53).
func GeometricMean(a, b uint64) uint64 {
	prod := new(uint256.Int).Mul(
		uint256.NewInt(a),
		uint256.NewInt(b),
	)
	// sqrt of a 128-bit value always fits uint64.
	return new(uint256.Int).Sqrt(prod).Uint64()
}

// reserveProduct returns base*quote as a 256-bit value for invariant checks.
func reserveProduct(base, quote uint64) *uint256.Int {
	return new(uint256.Int).Mul(
		uint256.NewInt(base),
		uint256.NewInt(quote),
	)
}

// CheckProductInvariant reports whether newBase*newQuote >= oldBase*oldQuote.
// A committed swap must never decrease the reserve product; rounding loss
// always lands on the pool side.
func CheckProductInvariant(oldBase, oldQuote, newBase, newQuote uint64) bool {
	oldK := reserveProduct(oldBase, oldQuote)
	newK := reserveProduct(newBase, newQuote)
	return newK.Cmp(oldK) >= 0
}
