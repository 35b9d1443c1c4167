package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/service/dto"
	"github.com/curvelabs/launchpool/internal/service/validate"
)

// Quote validates the request and prices a swap against the pool's current
// reserves without mutating anything. The returned amount is what an
// identical swap executed against the same reserves would pay out.
func (s *PoolService) Quote(ctx context.Context, req dto.QuoteRequest) (uint64, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return 0, err
	}
	return s.amm.Quote(ctx, req.Pool, req.Direction, req.Amount)
}

// Pool returns the current snapshot of an initialized pool.
func (s *PoolService) Pool(ctx context.Context, quoteAsset common.Address) (pool.Snapshot, error) {
	return s.amm.Pool(ctx, quoteAsset)
}
