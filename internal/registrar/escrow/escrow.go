// Package escrow custodies the refundable deposit held per claimed name.
//
// Deposit and withdraw are privileged behind the once-granted *Teller
// capability, mirroring the token issuer. Both operations cross into the
// external funds medium, which can run arbitrary counterparty code before
// returning; the package therefore shares the registrar's reentrancy guard
// and orders its own bookkeeping so a reentrant call never finds exploitable
// intermediate state.
package escrow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"namevault/internal/funds"
	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/platform/reentrancy"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/requestcontext"
)

// Escrow is the public read surface of the stake escrow.
type Escrow struct {
	stakes Store
	medium funds.Medium
	guard  *reentrancy.Guard
	logger *slog.Logger

	mu      sync.Mutex
	granted bool
}

// New creates the escrow. The guard must be the same instance the registrar
// holds across claim and release.
func New(stakes Store, medium funds.Medium, guard *reentrancy.Guard, logger *slog.Logger) *Escrow {
	return &Escrow{
		stakes: stakes,
		medium: medium,
		guard:  guard,
		logger: logger,
	}
}

// Capability grants the privileged deposit/withdraw handle, exactly once.
func (e *Escrow) Capability() (*Teller, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.granted {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "escrow capability already granted")
	}
	e.granted = true
	return &Teller{escrow: e}, nil
}

// StakeOf returns the deposit held for an identifier.
func (e *Escrow) StakeOf(ctx context.Context, identifier id.Identifier) (id.Quantity, error) {
	stake, err := e.stakes.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.Newf(dErrors.CodeNoStake, "no stake for %s", identifier)
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "look up stake")
	}
	return stake.Amount, nil
}

// enter makes deposit/withdraw guarded entry points. When the registrar
// already holds the shared guard (the only way the capability is ever
// reached in normal wiring) the call proceeds under that acquisition; when
// the escrow is driven standalone it acquires the guard itself, so a
// transfer callback re-entering either module still fails ReentrantCall.
func (e *Escrow) enter() (func(), error) {
	if e.guard.InProgress() {
		return func() {}, nil
	}
	exit, err := e.guard.Enter()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeReentrantCall, "escrow operation already in progress")
	}
	return exit, nil
}

// Teller is the once-granted capability for moving stake value.
type Teller struct {
	escrow *Escrow
}

// Deposit pulls amount from the payer into the pool and records the stake.
//
// The pull is a suspension point: counterparty code may run before it
// returns. No escrow bookkeeping is touched until the pull has succeeded, so
// there is no intermediate state for a reentrant call to exploit.
func (t *Teller) Deposit(ctx context.Context, identifier id.Identifier, amount id.Quantity, payer id.Account) error {
	e := t.escrow
	exit, err := e.enter()
	if err != nil {
		return err
	}
	defer exit()

	if payer.IsZero() {
		return dErrors.New(dErrors.CodeZeroAddress, "payer must not be the null account")
	}
	if amount < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "deposit amount must not be negative")
	}

	if err := e.medium.Pull(ctx, payer, amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConflict, "pull deposit from payer")
	}

	stake := models.StakeRecord{
		ID:          identifier,
		Amount:      amount,
		DepositedAt: requestcontext.Now(ctx),
	}
	if err := e.stakes.Insert(ctx, stake); err != nil {
		// Value was already pulled; hand it straight back before failing.
		if pushErr := e.medium.Push(ctx, payer, amount); pushErr != nil {
			e.logger.ErrorContext(ctx, "deposit rollback push failed",
				"identifier", identifier.String(),
				"error", pushErr,
			)
		}
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "stake for %s already exists", identifier)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "record stake")
	}
	return nil
}

// Withdraw returns the full stake to the beneficiary and deletes the record.
//
// The record is deleted BEFORE the push so a reentrant call during the push
// finds no stake to withdraw a second time. If the push fails the record is
// restored and the operation reports failure with no net effect.
func (t *Teller) Withdraw(ctx context.Context, identifier id.Identifier, beneficiary id.Account) error {
	e := t.escrow
	exit, err := e.enter()
	if err != nil {
		return err
	}
	defer exit()

	if beneficiary.IsZero() {
		return dErrors.New(dErrors.CodeZeroAddress, "beneficiary must not be the null account")
	}

	stake, err := e.stakes.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNoStake, "no stake for %s", identifier)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "look up stake")
	}

	if err := e.stakes.Delete(ctx, identifier); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete stake")
	}

	if err := e.medium.Push(ctx, beneficiary, stake.Amount); err != nil {
		if restoreErr := e.stakes.Insert(ctx, stake); restoreErr != nil {
			e.logger.ErrorContext(ctx, "stake restore after failed push",
				"identifier", identifier.String(),
				"error", restoreErr,
			)
		}
		return dErrors.Wrap(err, dErrors.CodeConflict, "push stake to beneficiary")
	}
	return nil
}
