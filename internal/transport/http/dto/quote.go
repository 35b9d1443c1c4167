package dto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/curvelabs/launchpool/internal/pool"
)

// QuoteRequest represents a parsed HTTP request for the /quote endpoint.
type QuoteRequest struct {
	Pool      common.Address
	Direction pool.Direction
	Amount    uint64
}
