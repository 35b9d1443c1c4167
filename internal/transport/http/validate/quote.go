package validate

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/transport/http/dto"
)

// QuoteRequestValidate validates /quote request and returns dto.
func QuoteRequestValidate(r *http.Request) (*dto.QuoteRequest, int, error) {
	q := r.URL.Query()
	p := q.Get("pool")
	dir := q.Get("direction")
	amt := q.Get("amount")
	if p == "" || dir == "" || amt == "" {
		return nil, http.StatusBadRequest, errors.New("missing params")
	}
	if !common.IsHexAddress(p) {
		return nil, http.StatusBadRequest, errors.New("bad pool address format")
	}
	d, err := pool.ParseDirection(dir)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	a, err := strconv.ParseUint(amt, 10, 64)
	if err != nil || a == 0 {
		return nil, http.StatusBadRequest, errors.New("bad amount")
	}
	return &dto.QuoteRequest{
		Pool:      common.HexToAddress(p),
		Direction: d,
		Amount:    a,
	}, 0, nil
}

// PoolRequestValidate validates /pool request and returns the pool address.
func PoolRequestValidate(r *http.Request) (common.Address, int, error) {
	p := r.URL.Query().Get("pool")
	if p == "" {
		return common.Address{}, http.StatusBadRequest, errors.New("missing params")
	}
	if !common.IsHexAddress(p) {
		return common.Address{}, http.StatusBadRequest, errors.New("bad pool address format")
	}
	return common.HexToAddress(p), 0, nil
}
