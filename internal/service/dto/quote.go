package dto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/curvelabs/launchpool/internal/pool"
)

// QuoteRequest represents a request to price a swap against a pool's
// current reserves.
type QuoteRequest struct {
	Pool      common.Address
	Direction pool.Direction
	Amount    uint64
}
