package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/service/dto"
	"github.com/curvelabs/launchpool/internal/transport/http/validate"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, code, err := validate.QuoteRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	out, err := s.svc.Quote(ctx, dto.QuoteRequest{
		Pool:      req.Pool,
		Direction: req.Direction,
		Amount:    req.Amount,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(strconv.FormatUint(out, 10))); err != nil {
		s.log.Error("quote write error", zap.Error(err))
	}
}

func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	addr, code, err := validate.PoolRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	snap, err := s.svc.Pool(ctx, addr)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error("pool write error", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, amm.ErrNotInitialized):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, amm.ErrInvalidAmount),
		errors.Is(err, amm.ErrInsufficientLiquidity),
		errors.Is(err, amm.ErrSlippageExceeded):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
