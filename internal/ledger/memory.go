package ledger

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/curvelabs/launchpool/internal/amm"
)

// Memory is an in-process Ledger backed by a balance table. It is the
// implementation wired into the server binary and integration tests; a real
// deployment would substitute the host chain's ledger here.
type Memory struct {
	mu sync.Mutex
	// asset -> account -> balance
	balances map[common.Address]map[common.Address]uint64
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[common.Address]map[common.Address]uint64),
	}
}

// MoveValue transfers amount of asset between accounts. Both sides are
// updated under one lock, so the transfer is atomic: it either fully happens
// or fails without effect.
func (m *Memory) MoveValue(_ context.Context, from, to common.Address, asset common.Address, amount uint64) error {
	if amount == 0 || from == to {
		return ErrInvalidTransfer
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	book := m.book(asset)
	if book[from] < amount {
		return errors.Wrapf(ErrInsufficientFunds, "account %s", from.Hex())
	}

	newTo, err := amm.CheckedAdd(book[to], amount)
	if err != nil {
		return err
	}
	book[from] -= amount
	book[to] = newTo
	return nil
}

// Mint creates new units of asset in the target account.
func (m *Memory) Mint(_ context.Context, to common.Address, asset common.Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidTransfer
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	book := m.book(asset)
	newBal, err := amm.CheckedAdd(book[to], amount)
	if err != nil {
		return err
	}
	book[to] = newBal
	return nil
}

// Burn destroys units of asset held by the account.
func (m *Memory) Burn(_ context.Context, from common.Address, asset common.Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidTransfer
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	book := m.book(asset)
	if book[from] < amount {
		return errors.Wrapf(ErrInsufficientFunds, "account %s", from.Hex())
	}
	book[from] -= amount
	return nil
}

// BalanceOf returns the account's current holding of asset.
func (m *Memory) BalanceOf(_ context.Context, account common.Address, asset common.Address) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.book(asset)[account], nil
}

func (m *Memory) book(asset common.Address) map[common.Address]uint64 {
	book, ok := m.balances[asset]
	if !ok {
		book = make(map[common.Address]uint64)
		m.balances[asset] = book
	}
	return book
}
