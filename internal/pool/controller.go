package pool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/ledger"
)

// Direction selects which side of the pair a swap consumes.
type Direction int

const (
	// BaseForQuote spends the native base asset and receives the token.
	BaseForQuote Direction = iota
	// QuoteForBase spends the token and receives the native base asset.
	QuoteForBase
)

func (d Direction) String() string {
	switch d {
	case BaseForQuote:
		return "base_for_quote"
	case QuoteForBase:
		return "quote_for_base"
	default:
		return "unknown"
	}
}

// ParseDirection parses the textual direction used by the HTTP transport.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "base_for_quote":
		return BaseForQuote, nil
	case "quote_for_base":
		return QuoteForBase, nil
	default:
		return 0, errors.Errorf("unknown swap direction %q", s)
	}
}

// errProductDecreased signals a broken engine computation; it can only fire
// on a bug, never on bad caller input.
var errProductDecreased = errors.New("reserve product decreased")

// SwapReceipt is the result of a committed swap.
type SwapReceipt struct {
	Output uint64
	Fee    uint64
	Pool   Snapshot
}

// AddLiquidityReceipt is the result of a committed liquidity contribution.
type AddLiquidityReceipt struct {
	QuoteIn      uint64
	SharesMinted uint64
	Pool         Snapshot
}

// RemoveLiquidityReceipt is the result of a committed withdrawal.
type RemoveLiquidityReceipt struct {
	BaseOut  uint64
	QuoteOut uint64
	Pool     Snapshot
}

// Controller owns pool records and executes one instruction at a time
// against them. It is the only writer of pool state; the engine computes,
// the ledger moves value, and the controller commits the delta set only
// after every transfer of the operation succeeded.
type Controller struct {
	store  Store
	ledger ledger.Ledger
	events Emitter
	log    *zap.Logger

	// Fee recorded onto each pool at initialize. Explicit configuration,
	// not ambient protocol state.
	feeNumerator   uint64
	feeDenominator uint64
}

// NewController wires the controller to its collaborators. The fee rate
// must be a proper fraction.
func NewController(store Store, l ledger.Ledger, events Emitter, log *zap.Logger, feeNumerator, feeDenominator uint64) (*Controller, error) {
	if feeDenominator == 0 || feeNumerator >= feeDenominator {
		return nil, errors.Errorf("invalid fee rate %d/%d", feeNumerator, feeDenominator)
	}
	return &Controller{
		store:          store,
		ledger:         l,
		events:         events,
		log:            log,
		feeNumerator:   feeNumerator,
		feeDenominator: feeDenominator,
	}, nil
}

// Initialize creates a standard pool for quoteAsset, seeded with the
// caller's contributions, and mints the initial liquidity shares (the
// integer geometric mean of the seeds) to the caller. The transition is
// one-way; a second initialize fails with ErrAlreadyInitialized.
func (c *Controller) Initialize(ctx context.Context, caller, quoteAsset common.Address, seedBase, seedQuote uint64) (Snapshot, error) {
	if seedBase == 0 || seedQuote == 0 {
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

	shares := amm.InitialShares(seedBase, seedQuote)

	if err := c.ledger.MoveValue(ctx, caller, BaseVault(quoteAsset), ledger.NativeAsset, seedBase); err != nil {
		return Snapshot{}, errors.Wrap(err, "seed base transfer")
	}
	if err := c.ledger.MoveValue(ctx, caller, QuoteVault(quoteAsset), quoteAsset, seedQuote); err != nil {
		err = errors.Wrap(err, "seed quote transfer")
		return Snapshot{}, multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), caller, ledger.NativeAsset, seedBase))
	}
	if err := c.ledger.Mint(ctx, caller, ShareAsset(quoteAsset), shares); err != nil {
		err = errors.Wrap(err, "share mint")
		err = multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), caller, ledger.NativeAsset, seedBase))
		return Snapshot{}, multierr.Append(err, c.refund(ctx, QuoteVault(quoteAsset), caller, quoteAsset, seedQuote))
	}

	p.QuoteAsset = quoteAsset
	p.BaseReserve = seedBase
	p.QuoteReserve = seedQuote
	p.ShareSupply = shares
	p.FeeNumerator = c.feeNumerator
	p.FeeDenominator = c.feeDenominator
	p.HasShares = true
	p.Initialized = true

	snap := p.Snapshot()
	c.events.Emit(Event{
		Kind:         EventInitialized,
		Pool:         quoteAsset,
		Actor:        caller,
		AmountIn:     seedBase,
		AmountOut:    seedQuote,
		Shares:       shares,
		BaseReserve:  snap.BaseReserve,
		QuoteReserve: snap.QuoteReserve,
		ShareSupply:  snap.ShareSupply,
	})
	return snap, nil
}

// Quote prices a swap against the pool's current reserves without mutating
// anything.
func (c *Controller) Quote(ctx context.Context, quoteAsset common.Address, dir Direction, input uint64) (uint64, error) {
	snap, err := c.store.View(ctx, quoteAsset)
	if err != nil {
		return 0, err
	}

	reserveIn, reserveOut := snap.BaseReserve, snap.QuoteReserve
	if dir == QuoteForBase {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	res, err := amm.SwapQuote(input, reserveIn, reserveOut, snap.FeeNumerator, snap.FeeDenominator, 0)
	if err != nil {
		return 0, err
	}
	return res.Output, nil
}

// Pool returns the current snapshot of an initialized pool.
func (c *Controller) Pool(ctx context.Context, quoteAsset common.Address) (Snapshot, error) {
	return c.store.View(ctx, quoteAsset)
}

// Swap exchanges input of one side for the other at the constant-product
// price, after deducting the pool fee from the input. The full input amount,
// fee included, stays on the input-side reserve.
func (c *Controller) Swap(ctx context.Context, caller, quoteAsset common.Address, dir Direction, input, minOutput uint64) (SwapReceipt, error) {
	p, release, err := c.store.Acquire(ctx, quoteAsset)
	if err != nil {
		return SwapReceipt{}, errors.Wrap(err, "store.Acquire")
	}
	defer release()

	if !p.Initialized {
		return SwapReceipt{}, amm.ErrNotInitialized
	}

	reserveIn, reserveOut := p.BaseReserve, p.QuoteReserve
	inAsset, outAsset := ledger.NativeAsset, p.QuoteAsset
	inVault, outVault := BaseVault(p.QuoteAsset), QuoteVault(p.QuoteAsset)
	if dir == QuoteForBase {
		reserveIn, reserveOut = reserveOut, reserveIn
		inAsset, outAsset = outAsset, inAsset
		inVault, outVault = outVault, inVault
	}

	res, err := amm.SwapQuote(input, reserveIn, reserveOut, p.FeeNumerator, p.FeeDenominator, minOutput)
	if err != nil {
		return SwapReceipt{}, err
	}

	newIn, err := amm.CheckedAdd(reserveIn, input)
	if err != nil {
		return SwapReceipt{}, err
	}
	newOut, err := amm.CheckedSub(reserveOut, res.Output)
	if err != nil {
		return SwapReceipt{}, err
	}

	newBase, newQuote := newIn, newOut
	if dir == QuoteForBase {
		newBase, newQuote = newOut, newIn
	}
	if !amm.CheckProductInvariant(p.BaseReserve, p.QuoteReserve, newBase, newQuote) {
		c.log.Error("swap computation violated the product invariant",
			zap.Stringer("pool", p.QuoteAsset),
			zap.Uint64("input", input),
		)
		return SwapReceipt{}, errProductDecreased
	}

	if err := c.ledger.MoveValue(ctx, caller, inVault, inAsset, input); err != nil {
		return SwapReceipt{}, errors.Wrap(err, "swap input transfer")
	}
	if err := c.ledger.MoveValue(ctx, outVault, caller, outAsset, res.Output); err != nil {
		err = errors.Wrap(err, "swap payout transfer")
		return SwapReceipt{}, multierr.Append(err, c.refund(ctx, inVault, caller, inAsset, input))
	}

	p.BaseReserve = newBase
	p.QuoteReserve = newQuote

	snap := p.Snapshot()
	c.events.Emit(Event{
		Kind:         EventSwap,
		Pool:         p.QuoteAsset,
		Actor:        caller,
		AmountIn:     input,
		AmountOut:    res.Output,
		Fee:          res.Fee,
		BaseReserve:  snap.BaseReserve,
		QuoteReserve: snap.QuoteReserve,
		ShareSupply:  snap.ShareSupply,
	})
	return SwapReceipt{Output: res.Output, Fee: res.Fee, Pool: snap}, nil
}

// AddLiquidity contributes baseIn plus the proportional quote amount and
// mints liquidity shares to the caller. Shares are the minimum of the two
// per-side computations, so rounding can only favor existing holders.
func (c *Controller) AddLiquidity(ctx context.Context, caller, quoteAsset common.Address, baseIn, maxQuoteIn, minSharesOut uint64) (AddLiquidityReceipt, error) {
	p, release, err := c.store.Acquire(ctx, quoteAsset)
	if err != nil {
		return AddLiquidityReceipt{}, errors.Wrap(err, "store.Acquire")
	}
	defer release()

	if !p.Initialized {
		return AddLiquidityReceipt{}, amm.ErrNotInitialized
	}
	if !p.HasShares {
		return AddLiquidityReceipt{}, amm.ErrNoLiquidityShares
	}

	res, err := amm.AddLiquidityQuote(baseIn, p.BaseReserve, p.QuoteReserve, p.ShareSupply)
	if err != nil {
		return AddLiquidityReceipt{}, err
	}
	if res.QuoteIn > maxQuoteIn {
		return AddLiquidityReceipt{}, amm.ErrSlippageExceeded
	}
	if res.Minted < minSharesOut {
		return AddLiquidityReceipt{}, amm.ErrSlippageExceeded
	}

	newBase, err := amm.CheckedAdd(p.BaseReserve, baseIn)
	if err != nil {
		return AddLiquidityReceipt{}, err
	}
	newQuote, err := amm.CheckedAdd(p.QuoteReserve, res.QuoteIn)
	if err != nil {
		return AddLiquidityReceipt{}, err
	}
	newSupply, err := amm.CheckedAdd(p.ShareSupply, res.Minted)
	if err != nil {
		return AddLiquidityReceipt{}, err
	}

	if err := c.ledger.MoveValue(ctx, caller, BaseVault(quoteAsset), ledger.NativeAsset, baseIn); err != nil {
		return AddLiquidityReceipt{}, errors.Wrap(err, "base transfer")
	}
	if res.QuoteIn > 0 {
		if err := c.ledger.MoveValue(ctx, caller, QuoteVault(quoteAsset), quoteAsset, res.QuoteIn); err != nil {
			err = errors.Wrap(err, "quote transfer")
			return AddLiquidityReceipt{}, multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), caller, ledger.NativeAsset, baseIn))
		}
	}
	if res.Minted > 0 {
		if err := c.ledger.Mint(ctx, caller, ShareAsset(quoteAsset), res.Minted); err != nil {
			err = errors.Wrap(err, "share mint")
			err = multierr.Append(err, c.refund(ctx, BaseVault(quoteAsset), caller, ledger.NativeAsset, baseIn))
			if res.QuoteIn > 0 {
				err = multierr.Append(err, c.refund(ctx, QuoteVault(quoteAsset), caller, quoteAsset, res.QuoteIn))
			}
			return AddLiquidityReceipt{}, err
		}
	}

	p.BaseReserve = newBase
	p.QuoteReserve = newQuote
	p.ShareSupply = newSupply

	snap := p.Snapshot()
	c.events.Emit(Event{
		Kind:         EventLiquidityAdded,
		Pool:         p.QuoteAsset,
		Actor:        caller,
		AmountIn:     baseIn,
		AmountOut:    res.QuoteIn,
		Shares:       res.Minted,
		BaseReserve:  snap.BaseReserve,
		QuoteReserve: snap.QuoteReserve,
		ShareSupply:  snap.ShareSupply,
	})
	return AddLiquidityReceipt{QuoteIn: res.QuoteIn, SharesMinted: res.Minted, Pool: snap}, nil
}

// RemoveLiquidity burns sharesIn of the caller's liquidity shares and pays
// out the proportional reserves, floors taken. A withdrawal that would leave
// either reserve empty fails with ErrInsufficientLiquidity: an initialized
// pool is never fully drained.
func (c *Controller) RemoveLiquidity(ctx context.Context, caller, quoteAsset common.Address, sharesIn, minBaseOut, minQuoteOut uint64) (RemoveLiquidityReceipt, error) {
	p, release, err := c.store.Acquire(ctx, quoteAsset)
	if err != nil {
		return RemoveLiquidityReceipt{}, errors.Wrap(err, "store.Acquire")
	}
	defer release()

	if !p.Initialized {
		return RemoveLiquidityReceipt{}, amm.ErrNotInitialized
	}
	if !p.HasShares {
		return RemoveLiquidityReceipt{}, amm.ErrNoLiquidityShares
	}

	res, err := amm.RemoveLiquidityQuote(sharesIn, p.BaseReserve, p.QuoteReserve, p.ShareSupply)
	if err != nil {
		return RemoveLiquidityReceipt{}, err
	}
	if res.BaseOut < minBaseOut || res.QuoteOut < minQuoteOut {
		return RemoveLiquidityReceipt{}, amm.ErrSlippageExceeded
	}
	if res.BaseOut >= p.BaseReserve || res.QuoteOut >= p.QuoteReserve {
		return RemoveLiquidityReceipt{}, amm.ErrInsufficientLiquidity
	}

	newSupply, err := amm.CheckedSub(p.ShareSupply, sharesIn)
	if err != nil {
		return RemoveLiquidityReceipt{}, err
	}

	if err := c.ledger.Burn(ctx, caller, ShareAsset(quoteAsset), sharesIn); err != nil {
		return RemoveLiquidityReceipt{}, errors.Wrap(err, "share burn")
	}
	if err := c.ledger.MoveValue(ctx, BaseVault(quoteAsset), caller, ledger.NativeAsset, res.BaseOut); err != nil {
		err = errors.Wrap(err, "base payout")
		return RemoveLiquidityReceipt{}, multierr.Append(err, c.remint(ctx, caller, quoteAsset, sharesIn))
	}
	if err := c.ledger.MoveValue(ctx, QuoteVault(quoteAsset), caller, quoteAsset, res.QuoteOut); err != nil {
		err = errors.Wrap(err, "quote payout")
		err = multierr.Append(err, c.refund(ctx, caller, BaseVault(quoteAsset), ledger.NativeAsset, res.BaseOut))
		return RemoveLiquidityReceipt{}, multierr.Append(err, c.remint(ctx, caller, quoteAsset, sharesIn))
	}

	p.BaseReserve -= res.BaseOut
	p.QuoteReserve -= res.QuoteOut
	p.ShareSupply = newSupply

	snap := p.Snapshot()
	c.events.Emit(Event{
		Kind:         EventLiquidityRemoved,
		Pool:         p.QuoteAsset,
		Actor:        caller,
		AmountIn:     sharesIn,
		AmountOut:    res.BaseOut,
		Shares:       sharesIn,
		BaseReserve:  snap.BaseReserve,
		QuoteReserve: snap.QuoteReserve,
		ShareSupply:  snap.ShareSupply,
	})
	return RemoveLiquidityReceipt{BaseOut: res.BaseOut, QuoteOut: res.QuoteOut, Pool: snap}, nil
}

// refund compensates an already-executed transfer leg when a later leg of
// the same operation failed. A refund failure is reported to the caller
// alongside the original error; it cannot be swallowed.
func (c *Controller) refund(ctx context.Context, from, to, asset common.Address, amount uint64) error {
	if err := c.ledger.MoveValue(ctx, from, to, asset, amount); err != nil {
		c.log.Error("refund failed after aborted operation",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Uint64("amount", amount),
			zap.Error(err),
		)
		return errors.Wrap(err, "refund")
	}
	return nil
}

// remint compensates a share burn when a later payout leg failed.
func (c *Controller) remint(ctx context.Context, to, quoteAsset common.Address, shares uint64) error {
	if err := c.ledger.Mint(ctx, to, ShareAsset(quoteAsset), shares); err != nil {
		c.log.Error("share remint failed after aborted withdrawal",
			zap.Stringer("pool", quoteAsset),
			zap.Uint64("shares", shares),
			zap.Error(err),
		)
		return errors.Wrap(err, "remint")
	}
	return nil
}
