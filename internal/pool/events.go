package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// EventKind names the operation a structured record describes.
type EventKind string

const (
	EventInitialized      EventKind = "pool_initialized"
	EventSwap             EventKind = "swap"
	EventLiquidityAdded   EventKind = "liquidity_added"
	EventLiquidityRemoved EventKind = "liquidity_removed"
	EventLaunched         EventKind = "launch_initialized"
)

// Event is the structured record emitted after every committed mutation,
// for external indexing. The wire format beyond this struct is the
// consumer's concern.
type Event struct {
	Kind  EventKind
	Pool  common.Address
	Actor common.Address

	AmountIn  uint64
	AmountOut uint64
	Fee       uint64
	Shares    uint64

	BaseReserve  uint64
	QuoteReserve uint64
	ShareSupply  uint64
}

// Emitter consumes operation records. Emit is called only after the state
// commit succeeded.
type Emitter interface {
	Emit(ev Event)
}

// ZapEmitter writes each record as one structured log line.
type ZapEmitter struct {
	log *zap.Logger
}

// NewZapEmitter creates an Emitter backed by the given logger.
func NewZapEmitter(log *zap.Logger) *ZapEmitter {
	return &ZapEmitter{log: log}
}

// Emit implements Emitter.
func (e *ZapEmitter) Emit(ev Event) {
	e.log.Info("pool event",
		zap.String("kind", string(ev.Kind)),
		zap.Stringer("pool", ev.Pool),
		zap.Stringer("actor", ev.Actor),
		zap.Uint64("amount_in", ev.AmountIn),
		zap.Uint64("amount_out", ev.AmountOut),
		zap.Uint64("fee", ev.Fee),
		zap.Uint64("shares", ev.Shares),
		zap.Uint64("base_reserve", ev.BaseReserve),
		zap.Uint64("quote_reserve", ev.QuoteReserve),
		zap.Uint64("share_supply", ev.ShareSupply),
	)
}
