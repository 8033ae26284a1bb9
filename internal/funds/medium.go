// Package funds defines the boundary to the external value-transfer medium.
//
// The medium is an external collaborator: a transfer may execute arbitrary
// code on the counterparty before returning. Every call through this
// interface is therefore a suspension point for the registrar core, and the
// reentrancy guard must already be held when one is made.
package funds

import (
	"context"
	"errors"

	id "namevault/pkg/domain"
)

// ErrInsufficientFunds is returned when the payer cannot cover a pull.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Medium moves value between external accounts and the escrow pool.
type Medium interface {
	// Pull moves amount from payer into the pool.
	Pull(ctx context.Context, from id.Account, amount id.Quantity) error
	// Push moves amount from the pool to the beneficiary.
	Push(ctx context.Context, to id.Account, amount id.Quantity) error
}
