// Package reentrancy provides the in-progress flag shared by the registrar
// service and the stake escrow.
//
// A single logical request can hand control to the external funds medium
// mid-operation; that collaborator may call back into the registrar before
// returning. The guard makes such nested entries fail fast instead of letting
// them observe or mutate half-applied state.
package reentrancy

import (
	"errors"
	"sync/atomic"
)

// ErrReentrantCall is returned when a guarded entry point is invoked while an
// earlier invocation on the same guard has not completed.
var ErrReentrantCall = errors.New("reentrant call")

// Guard is a process-wide in-progress flag with scoped acquire/release.
// The zero value is ready to use.
type Guard struct {
	inProgress atomic.Bool
}

// NewGuard returns a guard ready for use. One guard instance is shared by the
// registrar/escrow pair; it is constructed at service start, never ambient.
func NewGuard() *Guard {
	return &Guard{}
}

// Enter acquires the guard. It returns an exit function that must run on
// every path out of the guarded section, or ErrReentrantCall when the guard
// is already held.
//
// The exit function is idempotent; calling it twice is a no-op.
func (g *Guard) Enter() (func(), error) {
	if !g.inProgress.CompareAndSwap(false, true) {
		return nil, ErrReentrantCall
	}
	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			g.inProgress.Store(false)
		}
	}, nil
}

// InProgress reports whether a guarded operation is currently executing.
// The escrow uses this to assert it is only reached from inside a guarded
// registrar operation.
func (g *Guard) InProgress() bool {
	return g.inProgress.Load()
}
