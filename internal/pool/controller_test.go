package pool_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/ledger"
	ledgermock "github.com/curvelabs/launchpool/internal/ledger/mock"
	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/store"
)

var (
	trader = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	token  = common.HexToAddress("0x00000000000000000000000000000000000000f1")
)

const (
	seedBase  = uint64(1_000_000)
	seedQuote = uint64(1_000_000_000)
)

// recorder captures emitted events for assertions.
type recorder struct {
	events []pool.Event
}

func (r *recorder) Emit(ev pool.Event) { r.events = append(r.events, ev) }

func (r *recorder) last(t *testing.T) pool.Event {
	t.Helper()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func newController(t *testing.T, l ledger.Ledger) (*pool.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := pool.NewController(store.NewMemory(), l, rec, zap.NewNop(), 3, 1000)
	require.NoError(t, err)
	return c, rec
}

// seededController returns a controller with an initialized standard pool
// and a funded trader account.
func seededController(t *testing.T) (*pool.Controller, *ledger.Memory, *recorder) {
	t.Helper()
	ctx := context.Background()

	l := ledger.NewMemory()
	require.NoError(t, l.Mint(ctx, trader, ledger.NativeAsset, 10*seedBase))
	require.NoError(t, l.Mint(ctx, trader, token, 10*seedQuote))

	c, rec := newController(t, l)
	_, err := c.Initialize(ctx, trader, token, seedBase, seedQuote)
	require.NoError(t, err)
	return c, l, rec
}

func TestNewController_RejectsBadFee(t *testing.T) {
	t.Parallel()

	_, err := pool.NewController(store.NewMemory(), ledger.NewMemory(), &recorder{}, zap.NewNop(), 1, 0)
	require.Error(t, err)
	_, err = pool.NewController(store.NewMemory(), ledger.NewMemory(), &recorder{}, zap.NewNop(), 1000, 1000)
	require.Error(t, err)
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := ledger.NewMemory()
	require.NoError(t, l.Mint(ctx, trader, ledger.NativeAsset, seedBase))
	require.NoError(t, l.Mint(ctx, trader, token, seedQuote))

	c, rec := newController(t, l)

	snap, err := c.Initialize(ctx, trader, token, seedBase, seedQuote)
	require.NoError(t, err)

	assert.EqualValues(t, seedBase, snap.BaseReserve)
	assert.EqualValues(t, seedQuote, snap.QuoteReserve)
	assert.EqualValues(t, 31_622_776, snap.ShareSupply) // floor(sqrt(seedBase*seedQuote))
	assert.True(t, snap.HasShares)

	// Seeds left the caller and landed in the derived vaults.
	bal, err := l.BalanceOf(ctx, pool.BaseVault(token), ledger.NativeAsset)
	require.NoError(t, err)
	assert.EqualValues(t, seedBase, bal)
	bal, err = l.BalanceOf(ctx, pool.QuoteVault(token), token)
	require.NoError(t, err)
	assert.EqualValues(t, seedQuote, bal)
	bal, err = l.BalanceOf(ctx, trader, pool.ShareAsset(token))
	require.NoError(t, err)
	assert.EqualValues(t, 31_622_776, bal)

	ev := rec.last(t)
	assert.Equal(t, pool.EventInitialized, ev.Kind)
	assert.Equal(t, token, ev.Pool)
}

func TestInitialize_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	_, err := c.Initialize(ctx, trader, token, seedBase, seedQuote)
	require.ErrorIs(t, err, amm.ErrAlreadyInitialized)

	other := common.HexToAddress("0x00000000000000000000000000000000000000f2")
	_, err = c.Initialize(ctx, trader, other, 0, seedQuote)
	require.ErrorIs(t, err, amm.ErrInvalidAmount)
	_, err = c.Initialize(ctx, trader, other, seedBase, 0)
	require.ErrorIs(t, err, amm.ErrInvalidAmount)
}

func TestSwap_BaseForQuote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, l, rec := seededController(t)

	receipt, err := c.Swap(ctx, trader, token, pool.BaseForQuote, 1000, 0)
	require.NoError(t, err)

	// fee 3, input after fee 997, output floor(997*1e9/1000997).
	assert.EqualValues(t, 3, receipt.Fee)
	assert.EqualValues(t, 996_006, receipt.Output)
	assert.EqualValues(t, 1_001_000, receipt.Pool.BaseReserve)
	assert.EqualValues(t, 999_003_994, receipt.Pool.QuoteReserve)

	// The full input, fee included, sits in the base vault.
	bal, err := l.BalanceOf(ctx, pool.BaseVault(token), ledger.NativeAsset)
	require.NoError(t, err)
	assert.EqualValues(t, 1_001_000, bal)

	ev := rec.last(t)
	assert.Equal(t, pool.EventSwap, ev.Kind)
	assert.EqualValues(t, 996_006, ev.AmountOut)
}

func TestSwap_QuoteForBase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	receipt, err := c.Swap(ctx, trader, token, pool.QuoteForBase, 1_000_000, 0)
	require.NoError(t, err)
	assert.Positive(t, receipt.Output)
	assert.EqualValues(t, seedBase-receipt.Output, receipt.Pool.BaseReserve)
	assert.EqualValues(t, seedQuote+1_000_000, receipt.Pool.QuoteReserve)
}

func TestSwap_MatchesQuote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	quoted1, err := c.Quote(ctx, token, pool.BaseForQuote, 1000)
	require.NoError(t, err)
	quoted2, err := c.Quote(ctx, token, pool.BaseForQuote, 1000)
	require.NoError(t, err)
	require.Equal(t, quoted1, quoted2)

	receipt, err := c.Swap(ctx, trader, token, pool.BaseForQuote, 1000, 0)
	require.NoError(t, err)
	require.Equal(t, quoted1, receipt.Output)
}

func TestSwap_ProductNeverDecreases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	prevBase, prevQuote := seedBase, seedQuote
	for _, in := range []uint64{1000, 50_000, 3, 999_999} {
		receipt, err := c.Swap(ctx, trader, token, pool.BaseForQuote, in, 0)
		require.NoError(t, err)
		require.True(t, amm.CheckProductInvariant(prevBase, prevQuote, receipt.Pool.BaseReserve, receipt.Pool.QuoteReserve))
		prevBase, prevQuote = receipt.Pool.BaseReserve, receipt.Pool.QuoteReserve
	}
}

func TestSwap_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	_, err := c.Swap(ctx, trader, token, pool.BaseForQuote, 0, 0)
	require.ErrorIs(t, err, amm.ErrInvalidAmount)

	_, err = c.Swap(ctx, trader, token, pool.BaseForQuote, 1000, 996_007)
	require.ErrorIs(t, err, amm.ErrSlippageExceeded)

	unknown := common.HexToAddress("0x00000000000000000000000000000000000000f3")
	_, err = c.Swap(ctx, trader, unknown, pool.BaseForQuote, 1000, 0)
	require.ErrorIs(t, err, amm.ErrNotInitialized)

	// A failed swap leaves reserves untouched.
	snap, err := c.Quote(ctx, token, pool.BaseForQuote, 1000)
	require.NoError(t, err)
	require.EqualValues(t, 996_006, snap)
}

func TestAddLiquidity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, l, rec := seededController(t)

	receipt, err := c.AddLiquidity(ctx, trader, token, 1000, 1_000_000, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 1_000_000, receipt.QuoteIn)
	assert.EqualValues(t, 31_622, receipt.SharesMinted)
	assert.EqualValues(t, 1_001_000, receipt.Pool.BaseReserve)
	assert.EqualValues(t, 1_001_000_000, receipt.Pool.QuoteReserve)
	assert.EqualValues(t, 31_654_398, receipt.Pool.ShareSupply)

	bal, err := l.BalanceOf(ctx, trader, pool.ShareAsset(token))
	require.NoError(t, err)
	assert.EqualValues(t, 31_622_776+31_622, bal)

	assert.Equal(t, pool.EventLiquidityAdded, rec.last(t).Kind)
}

func TestAddLiquidity_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	_, err := c.AddLiquidity(ctx, trader, token, 0, 0, 0)
	require.ErrorIs(t, err, amm.ErrInvalidAmount)

	// Required quote contribution exceeds the cap.
	_, err = c.AddLiquidity(ctx, trader, token, 1000, 999_999, 0)
	require.ErrorIs(t, err, amm.ErrSlippageExceeded)

	// Minted shares below the floor.
	_, err = c.AddLiquidity(ctx, trader, token, 1000, 1_000_000, 31_623)
	require.ErrorIs(t, err, amm.ErrSlippageExceeded)

	unknown := common.HexToAddress("0x00000000000000000000000000000000000000f4")
	_, err = c.AddLiquidity(ctx, trader, unknown, 1000, 1_000_000, 0)
	require.ErrorIs(t, err, amm.ErrNotInitialized)
}

func TestRemoveLiquidity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, l, rec := seededController(t)

	added, err := c.AddLiquidity(ctx, trader, token, 1000, 1_000_000, 0)
	require.NoError(t, err)

	removed, err := c.RemoveLiquidity(ctx, trader, token, added.SharesMinted, 0, 0)
	require.NoError(t, err)

	// Floor rounding never pays back more than was contributed.
	assert.LessOrEqual(t, removed.BaseOut, uint64(1000))
	assert.LessOrEqual(t, removed.QuoteOut, added.QuoteIn)
	assert.Positive(t, removed.BaseOut)
	assert.Positive(t, removed.QuoteOut)

	bal, err := l.BalanceOf(ctx, trader, pool.ShareAsset(token))
	require.NoError(t, err)
	assert.EqualValues(t, 31_622_776, bal)

	assert.Equal(t, pool.EventLiquidityRemoved, rec.last(t).Kind)
}

func TestRemoveLiquidity_FullDrainRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	// The initializer holds the entire supply; cashing it out would zero
	// both reserves, which an initialized pool never allows.
	_, err := c.RemoveLiquidity(ctx, trader, token, 31_622_776, 0, 0)
	require.ErrorIs(t, err, amm.ErrInsufficientLiquidity)
}

func TestRemoveLiquidity_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := seededController(t)

	_, err := c.RemoveLiquidity(ctx, trader, token, 0, 0, 0)
	require.ErrorIs(t, err, amm.ErrInvalidAmount)

	_, err = c.RemoveLiquidity(ctx, trader, token, 1000, 1<<40, 0)
	require.ErrorIs(t, err, amm.ErrSlippageExceeded)

	// Burning shares the caller does not hold fails in the ledger and
	// commits nothing.
	stranger := common.HexToAddress("0x00000000000000000000000000000000000000a2")
	_, err = c.RemoveLiquidity(ctx, stranger, token, 100, 0, 0)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	snap, err := c.Quote(ctx, token, pool.BaseForQuote, 1000)
	require.NoError(t, err)
	require.EqualValues(t, 996_006, snap)
}

// A payout failure after the input transfer must refund the input and leave
// the pool untouched.
func TestSwap_AbortRefundsInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := ledgermock.NewMockLedger(ctrl)
	rec := &recorder{}
	st := store.NewMemory()
	c, err := pool.NewController(st, mockLedger, rec, zap.NewNop(), 3, 1000)
	require.NoError(t, err)

	// Initialize through the mock.
	gomock.InOrder(
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), trader, pool.BaseVault(token), ledger.NativeAsset, seedBase).
			Return(nil),
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), trader, pool.QuoteVault(token), token, seedQuote).
			Return(nil),
		mockLedger.EXPECT().
			Mint(gomock.Any(), trader, pool.ShareAsset(token), uint64(31_622_776)).
			Return(nil),
	)
	_, err = c.Initialize(ctx, trader, token, seedBase, seedQuote)
	require.NoError(t, err)

	payoutErr := errors.New("vault unavailable")
	gomock.InOrder(
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), trader, pool.BaseVault(token), ledger.NativeAsset, uint64(1000)).
			Return(nil),
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), pool.QuoteVault(token), trader, token, uint64(996_006)).
			Return(payoutErr),
		// Refund of the already-taken input.
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), pool.BaseVault(token), trader, ledger.NativeAsset, uint64(1000)).
			Return(nil),
	)

	_, err = c.Swap(ctx, trader, token, pool.BaseForQuote, 1000, 0)
	require.ErrorIs(t, err, payoutErr)

	// Reserves stayed exactly as before the call.
	snap, err := st.View(ctx, token)
	require.NoError(t, err)
	require.EqualValues(t, seedBase, snap.BaseReserve)
	require.EqualValues(t, seedQuote, snap.QuoteReserve)
}

// When the refund itself also fails, both errors surface to the caller.
func TestSwap_AbortReportsRefundFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := ledgermock.NewMockLedger(ctrl)
	st := store.NewMemory()
	c, err := pool.NewController(st, mockLedger, &recorder{}, zap.NewNop(), 3, 1000)
	require.NoError(t, err)

	mockLedger.EXPECT().MoveValue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockLedger.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	_, err = c.Initialize(ctx, trader, token, seedBase, seedQuote)
	require.NoError(t, err)

	payoutErr := errors.New("vault unavailable")
	refundErr := errors.New("refund rejected")
	gomock.InOrder(
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), trader, pool.BaseVault(token), ledger.NativeAsset, uint64(1000)).
			Return(nil),
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), pool.QuoteVault(token), trader, token, uint64(996_006)).
			Return(payoutErr),
		mockLedger.EXPECT().
			MoveValue(gomock.Any(), pool.BaseVault(token), trader, ledger.NativeAsset, uint64(1000)).
			Return(refundErr),
	)

	_, err = c.Swap(ctx, trader, token, pool.BaseForQuote, 1000, 0)
	require.ErrorIs(t, err, payoutErr)
	require.ErrorIs(t, err, refundErr)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	dir, err := pool.ParseDirection("base_for_quote")
	require.NoError(t, err)
	require.Equal(t, pool.BaseForQuote, dir)

	dir, err = pool.ParseDirection("quote_for_base")
	require.NoError(t, err)
	require.Equal(t, pool.QuoteForBase, dir)

	_, err = pool.ParseDirection("sideways")
	require.Error(t, err)
}
