package funds

import (
	"context"
	"fmt"
	"sync"

	id "namevault/pkg/domain"
)

// Hook runs during a transfer, standing in for counterparty code the medium
// may execute. A non-nil error fails the transfer and the ledger reverts its
// own movement.
type Hook func(ctx context.Context) error

// Ledger is an in-memory Medium for development and tests. It keeps a plain
// balance table with the escrow pool as one more account, and exposes
// transfer hooks so tests can simulate counterparties that call back into
// the registrar mid-transfer.
type Ledger struct {
	mu       sync.Mutex
	balances map[id.Account]id.Quantity
	pool     id.Account

	pullHook Hook
	pushHook Hook
}

// NewLedger creates a ledger whose pool balance is held under the given
// account reference.
func NewLedger(pool id.Account) *Ledger {
	return &Ledger{
		balances: make(map[id.Account]id.Quantity),
		pool:     pool,
	}
}

// Credit funds an account out of thin air. Test and bootstrap helper.
func (l *Ledger) Credit(account id.Account, amount id.Quantity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
}

// BalanceOf returns the current balance of an account.
func (l *Ledger) BalanceOf(account id.Account) id.Quantity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

// SetPullHook installs counterparty code to run during Pull.
func (l *Ledger) SetPullHook(h Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pullHook = h
}

// SetPushHook installs counterparty code to run during Push.
func (l *Ledger) SetPushHook(h Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pushHook = h
}

// Pull moves amount from payer into the pool. The pull hook runs after the
// balance movement, before Pull returns; a hook error reverts the movement.
func (l *Ledger) Pull(ctx context.Context, from id.Account, amount id.Quantity) error {
	if amount < 0 {
		return fmt.Errorf("pull: negative amount %d", amount)
	}
	hook, err := l.move(from, l.pool, amount, true)
	if err != nil {
		return err
	}
	if hook != nil {
		if err := hook(ctx); err != nil {
			l.revert(from, l.pool, amount)
			return fmt.Errorf("pull rejected by counterparty: %w", err)
		}
	}
	return nil
}

// Push moves amount from the pool to the beneficiary. The push hook runs
// after the balance movement, before Push returns; a hook error reverts the
// movement.
func (l *Ledger) Push(ctx context.Context, to id.Account, amount id.Quantity) error {
	if amount < 0 {
		return fmt.Errorf("push: negative amount %d", amount)
	}
	hook, err := l.move(l.pool, to, amount, false)
	if err != nil {
		return err
	}
	if hook != nil {
		if err := hook(ctx); err != nil {
			l.revert(l.pool, to, amount)
			return fmt.Errorf("push rejected by counterparty: %w", err)
		}
	}
	return nil
}

// move applies the balance movement under the lock and returns the hook to
// run outside it. Hooks must run unlocked so counterparty code can observe
// (and attempt to re-enter) the system like real external code would.
func (l *Ledger) move(from, to id.Account, amount id.Quantity, pull bool) (Hook, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return nil, fmt.Errorf("%w: account %q has %d, needs %d",
			ErrInsufficientFunds, from, l.balances[from], amount)
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	if pull {
		return l.pullHook, nil
	}
	return l.pushHook, nil
}

func (l *Ledger) revert(from, to id.Account, amount id.Quantity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[to] -= amount
	l.balances[from] += amount
}
