package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/service/dto"
)

// QuoteRequestValidate validates business logic request.
func QuoteRequestValidate(req dto.QuoteRequest) error {
	if req.Pool == (common.Address{}) {
		return errors.Wrap(amm.ErrInvalidAmount, "pool address cannot be empty")
	}

	if req.Direction != pool.BaseForQuote && req.Direction != pool.QuoteForBase {
		return errors.Wrap(amm.ErrInvalidAmount, "unknown swap direction")
	}

	if req.Amount == 0 {
		return errors.Wrap(amm.ErrInvalidAmount, "amount cannot be zero")
	}

	return nil
}
