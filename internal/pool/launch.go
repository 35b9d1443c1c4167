package pool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/ledger"
)

const bpsDenominator = 10_000

// LaunchParams configures the bonding-curve bootstrap of a freshly minted
// token: the full supply is minted in one shot, a configured share goes to
// the creator, and the remainder seeds the pool's quote reserve against the
// creator's base contribution.
type LaunchParams struct {
	TotalSupply     uint64
	CreatorShareBps uint64
}

// Validate checks the launch parameters are usable.
func (lp LaunchParams) Validate() error {
	if lp.TotalSupply == 0 {
		return errors.New("total supply must be positive")
	}
	if lp.CreatorShareBps >= bpsDenominator {
		return errors.Errorf("creator share %d bps leaves nothing for the pool", lp.CreatorShareBps)
	}
	return nil
}

// InitializeLaunch creates a launch pool for a new token. Unlike the
// standard Initialize, the quote seed is not transferred from the creator:
// the token supply is minted here, split between the creator and the pool
// vault. No liquidity shares exist on a launch pool; its reserves move only
// through swaps, so the price follows the curve deterministically from net
// flow. Add/remove liquidity on the resulting pool fail with
// ErrNoLiquidityShares.
func (c *Controller) InitializeLaunch(ctx context.Context, creator, quoteAsset common.Address, seedBase uint64, params LaunchParams) (Snapshot, error) {
	if seedBase == 0 {
		return Snapshot{}, amm.ErrInvalidAmount
	}
	if err := params.Validate(); err != nil {
		return Snapshot{}, err
	}

	creatorShare, err := amm.MulDivFloor(params.TotalSupply, params.CreatorShareBps, bpsDenominator)
	if err != nil {
		return Snapshot{}, err
	}
	poolShare := params.TotalSupply - creatorShare
	if poolShare == 0 {
		return Snapshot{}, amm.ErrInvalidAmount
	}

	p, release, err := c.store.Acquire(ctx, quoteAsset)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "store.Acquire")
	}
	defer release()

	if p.Initialized {
		return Snapshot{}, amm.ErrAlreadyInitialized
	}

	if err := c.ledger.MoveValue(ctx, creator, BaseVault(quoteAsset), ledger.NativeAsset, seedBase); err != nil {
		return Snapshot{}, errors.Wrap(err, "seed base transfer")
	}
	if creatorShare > 0 {
		if err := c.ledger.Mint(ctx, creator, quoteAsset, creatorShare); err != nil {
			err = errors.Wrap(err, "creator supply mint")
			return Snapshot{}, multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), creator, ledger.NativeAsset, seedBase))
		}
	}
	if err := c.ledger.Mint(ctx, QuoteVault(quoteAsset), quoteAsset, poolShare); err != nil {
		err = errors.Wrap(err, "pool supply mint")
		if creatorShare > 0 {
			err = multierr.Append(err, errors.Wrap(c.ledger.Burn(ctx, creator, quoteAsset, creatorShare), "creator supply burn"))
		}
		return Snapshot{}, multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), creator, ledger.NativeAsset, seedBase))
	}

	p.QuoteAsset = quoteAsset
	p.BaseReserve = seedBase
	p.QuoteReserve = poolShare
	p.ShareSupply = 0
	p.FeeNumerator = c.feeNumerator
	p.FeeDenominator = c.feeDenominator
	p.HasShares = false
	p.Initialized = true

	snap := p.Snapshot()
	c.events.Emit(Event{
		Kind:         EventLaunched,
		Pool:         quoteAsset,
		Actor:        creator,
		AmountIn:     seedBase,
		AmountOut:    poolShare,
		BaseReserve:  snap.BaseReserve,
		QuoteReserve: snap.QuoteReserve,
		ShareSupply:  snap.ShareSupply,
	})
	return snap, nil
}
