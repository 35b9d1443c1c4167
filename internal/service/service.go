package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/service/dto"
)

// Service represents interface for business logic.
type Service interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (uint64, error)
	Pool(ctx context.Context, quoteAsset common.Address) (pool.Snapshot, error)
}

// AMM is the pool engine surface the service depends on.
type AMM interface {
	Quote(ctx context.Context, quoteAsset common.Address, dir pool.Direction, input uint64) (uint64, error)
	Pool(ctx context.Context, quoteAsset common.Address) (pool.Snapshot, error)
}

// PoolService represents struct for business logic.
type PoolService struct {
	amm AMM
}

// NewPoolService creates PoolService.
func NewPoolService(amm AMM) *PoolService {
	return &PoolService{amm: amm}
}
