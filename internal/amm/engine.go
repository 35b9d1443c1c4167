// Package amm implements the pure pool arithmetic: fee-adjusted constant
// product swap quoting and proportional liquidity-share math. Functions here
// operate only on the values passed in and return computed deltas; committing
// those deltas to pool state and moving value between accounts is the
// controller's job.
package amm

// SwapResult is the outcome of a swap quote. The full input amount, fee
// included, stays on the input-side reserve; Output leaves the opposing one.
type SwapResult struct {
	Output uint64
	Fee    uint64
}

// SwapQuote prices a swap of input against the constant product curve.
// The fee is floor-deducted from the input before pricing and is retained
// inside the input-side reserve. Fails with ErrInvalidAmount on zero input,
// ErrSlippageExceeded when the output falls below minOutput, and
// ErrInsufficientLiquidity when the computed output would claim the entire
// opposing reserve or more.
func SwapQuote(input, reserveIn, reserveOut, feeNum, feeDen, minOutput uint64) (SwapResult, error) {
	if input == 0 {
		return SwapResult{}, ErrInvalidAmount
	}

	fee, err := MulDivFloor(input, feeNum, feeDen)
	if err != nil {
		return SwapResult{}, err
	}
	inputAfterFee, err := CheckedSub(input, fee)
	if err != nil {
		return SwapResult{}, err
	}

	denom, err := CheckedAdd(reserveIn, inputAfterFee)
	if err != nil {
		return SwapResult{}, err
	}
	out, err := MulDivFloor(inputAfterFee, reserveOut, denom)
	if err != nil {
		return SwapResult{}, err
	}
	if out < minOutput {
		return SwapResult{}, ErrSlippageExceeded
	}
	if out >= reserveOut {
		return SwapResult{}, ErrInsufficientLiquidity
	}

	return SwapResult{Output: out, Fee: fee}, nil
}

// InitialShares returns the share supply minted to the initializer of a
// standard pool: the integer floor of the geometric mean of the two seeds.
func InitialShares(seedBase, seedQuote uint64) uint64 {
	return GeometricMean(seedBase, seedQuote)
}

// AddLiquidityResult is the delta set of an add-liquidity computation.
type AddLiquidityResult struct {
	QuoteIn uint64
	Minted  uint64
}

// AddLiquidityQuote computes the proportional quote contribution for baseIn
// and the shares to mint. Shares are computed from both sides and the minimum
// taken, so a rounded or imbalanced contribution can never dilute existing
// holders.
func AddLiquidityQuote(baseIn, baseReserve, quoteReserve, shareSupply uint64) (AddLiquidityResult, error) {
	if baseIn == 0 {
		return AddLiquidityResult{}, ErrInvalidAmount
	}

	quoteIn, err := MulDivFloor(baseIn, quoteReserve, baseReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}

	fromBase, err := MulDivFloor(baseIn, shareSupply, baseReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}
	fromQuote, err := MulDivFloor(quoteIn, shareSupply, quoteReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}

	return AddLiquidityResult{
		QuoteIn: quoteIn,
		Minted:  min(fromBase, fromQuote),
	}, nil
}

// RemoveLiquidityResult is the delta set of a remove-liquidity computation.
type RemoveLiquidityResult struct {
	BaseOut  uint64
	QuoteOut uint64
}

// RemoveLiquidityQuote computes the proportional withdrawal for sharesIn.
// Floor rounding returns at most the proportional claim; the residual dust
// stays with the remaining holders.
func RemoveLiquidityQuote(sharesIn, baseReserve, quoteReserve, shareSupply uint64) (RemoveLiquidityResult, error) {
	if sharesIn == 0 {
		return RemoveLiquidityResult{}, ErrInvalidAmount
	}

	baseOut, err := MulDivFloor(sharesIn, baseReserve, shareSupply)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}
	quoteOut, err := MulDivFloor(sharesIn, quoteReserve, shareSupply)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}

	return RemoveLiquidityResult{BaseOut: baseOut, QuoteOut: quoteOut}, nil
}
