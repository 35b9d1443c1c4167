// Package pool holds the persistent pool record and the lifecycle controller
// that orchestrates one instruction at a time: validate, compute through the
// amm engine, move value through the ledger, then commit the computed deltas.
package pool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Seeds for the accounts derived from a pool's quote asset. One pool exists
// per quote asset against the native base asset, and all of its accounts are
// deterministic functions of that identity.
var (
	baseVaultSeed  = []byte("pool_base_vault")
	quoteVaultSeed = []byte("pool_quote_vault")
	shareAssetSeed = []byte("pool_share_mint")
)

// Pool is the persistent record for one asset pair.
type Pool struct {
	QuoteAsset common.Address

	BaseReserve  uint64
	QuoteReserve uint64
	ShareSupply  uint64

	// Fee applied to the input side of every swap, recorded at initialize.
	FeeNumerator   uint64
	FeeDenominator uint64

	// HasShares distinguishes the standard pool (proportional liquidity
	// shares) from the launch pool (swap-only bonding curve).
	HasShares bool

	Initialized bool
}

// Snapshot is the read-only view returned by every successful operation.
type Snapshot struct {
	QuoteAsset     common.Address `json:"quote_asset"`
	BaseReserve    uint64         `json:"base_reserve"`
	QuoteReserve   uint64         `json:"quote_reserve"`
	ShareSupply    uint64         `json:"share_supply"`
	FeeNumerator   uint64         `json:"fee_numerator"`
	FeeDenominator uint64         `json:"fee_denominator"`
	HasShares      bool           `json:"has_shares"`
}

// Snapshot returns the pool's current read-only view.
func (p *Pool) Snapshot() Snapshot {
	return Snapshot{
		QuoteAsset:     p.QuoteAsset,
		BaseReserve:    p.BaseReserve,
		QuoteReserve:   p.QuoteReserve,
		ShareSupply:    p.ShareSupply,
		FeeNumerator:   p.FeeNumerator,
		FeeDenominator: p.FeeDenominator,
		HasShares:      p.HasShares,
	}
}

func derivedAccount(seed []byte, quoteAsset common.Address) common.Address {
	return common.BytesToAddress(crypto.Keccak256(seed, quoteAsset.Bytes()))
}

// BaseVault returns the pool's derived account holding the base reserve.
func BaseVault(quoteAsset common.Address) common.Address {
	return derivedAccount(baseVaultSeed, quoteAsset)
}

// QuoteVault returns the pool's derived account holding the quote reserve.
func QuoteVault(quoteAsset common.Address) common.Address {
	return derivedAccount(quoteVaultSeed, quoteAsset)
}

// ShareAsset returns the ledger asset identifier under which the pool's
// liquidity shares are tracked.
func ShareAsset(quoteAsset common.Address) common.Address {
	return derivedAccount(shareAssetSeed, quoteAsset)
}

// Store gives the controller serialized access to pool records. Acquire
// returns the record for quoteAsset with exclusive access, creating a blank
// uninitialized record when none exists; the returned release function must
// be called exactly once, after the commit (or abort) is complete. No other
// operation can touch the same record in between, which is what makes each
// instruction's read-compute-write span indivisible.
type Store interface {
	Acquire(ctx context.Context, quoteAsset common.Address) (*Pool, func(), error)

	// View returns a consistent read-only snapshot, or
	// amm.ErrNotInitialized when no initialized pool exists for the asset.
	View(ctx context.Context, quoteAsset common.Address) (Snapshot, error)
}
