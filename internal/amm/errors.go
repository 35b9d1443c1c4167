package amm

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount is returned when an operation receives a zero amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotInitialized is returned when an operation targets a pool that has
	// never been initialized.
	ErrNotInitialized = errors.New("pool not initialized")

	// ErrAlreadyInitialized is returned on a duplicate initialize.
	ErrAlreadyInitialized = errors.New("pool already initialized")

	// ErrSlippageExceeded is returned when a computed amount violates a
	// caller-supplied bound.
	ErrSlippageExceeded = errors.New("slippage tolerance exceeded")

	// ErrInsufficientLiquidity is returned when a swap would claim the entire
	// opposing reserve, or a withdrawal would leave a reserve empty.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrArithmeticOverflow is returned when checked math overflows uint64
	// or a divisor is zero.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrArithmeticUnderflow is returned when a checked subtraction would
	// go below zero.
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")

	// ErrNoLiquidityShares is returned when a liquidity operation targets a
	// launch pool, which has no share supply.
	ErrNoLiquidityShares = errors.New("pool has no liquidity shares")
)
