// Package store provides the persistence collaborator for pool records.
// The in-memory implementation keeps one mutex per record, so each
// instruction's read-compute-write span holds exclusive access to its pool
// while pools for different quote assets proceed independently.
package store

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/curvelabs/launchpool/internal/amm"
	"github.com/curvelabs/launchpool/internal/pool"
)

type record struct {
	mu   sync.Mutex
	pool pool.Pool
}

// Memory is an in-process pool.Store backed by a map of records.
type Memory struct {
	mu      sync.Mutex
	records map[common.Address]*record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[common.Address]*record),
	}
}

// Acquire returns the record for quoteAsset under its lock, creating a blank
// uninitialized record when none exists. The release function unlocks the
// record; until it is called no other operation can touch the same pool.
func (m *Memory) Acquire(_ context.Context, quoteAsset common.Address) (*pool.Pool, func(), error) {
	m.mu.Lock()
	rec, ok := m.records[quoteAsset]
	if !ok {
		rec = &record{}
		m.records[quoteAsset] = rec
	}
	m.mu.Unlock()

	rec.mu.Lock()
	return &rec.pool, rec.mu.Unlock, nil
}

// View returns a read-only snapshot of an initialized pool, or
// amm.ErrNotInitialized when the pool does not exist or was never
// initialized.
func (m *Memory) View(_ context.Context, quoteAsset common.Address) (pool.Snapshot, error) {
	m.mu.Lock()
	rec, ok := m.records[quoteAsset]
	m.mu.Unlock()

	if !ok {
		return pool.Snapshot{}, amm.ErrNotInitialized
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.pool.Initialized {
		return pool.Snapshot{}, amm.ErrNotInitialized
	}
	return rec.pool.Snapshot(), nil
}
