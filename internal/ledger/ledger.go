// Package ledger defines the value-transfer collaborator the pool controller
// depends on. The controller only computes amounts; every actual movement of
// value between named accounts goes through a Ledger, and any failure aborts
// the whole operation before pool state is committed.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	// ErrInsufficientFunds is returned when the source account cannot cover
	// the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransfer is returned on a zero-amount or self transfer.
	ErrInvalidTransfer = errors.New("invalid transfer")
)

// NativeAsset identifies the base asset (the native value unit). Fungible
// token assets use their own nonzero identifiers.
var NativeAsset = common.Address{}

// Ledger moves units of an asset between named accounts atomically.
type Ledger interface {
	// MoveValue transfers amount of asset from one account to another.
	// The transfer either fully happens or fails without effect.
	MoveValue(ctx context.Context, from, to common.Address, asset common.Address, amount uint64) error

	// Mint creates amount new units of asset in the target account.
	Mint(ctx context.Context, to common.Address, asset common.Address, amount uint64) error

	// Burn destroys amount units of asset held by the account.
	Burn(ctx context.Context, from common.Address, asset common.Address, amount uint64) error

	// BalanceOf returns the account's current holding of asset.
	BalanceOf(ctx context.Context, account common.Address, asset common.Address) (uint64, error)
}
