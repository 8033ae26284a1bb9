package service

import (
	"context"
	"sync"
)

// StoreTx provides a transactional boundary for mutations that span the
// record, stake, and token stores. Implementations may wrap a database
// transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// inMemoryStoreTx serializes multi-store mutations with one mutex. Paired
// with the unit-of-work journal this gives the in-memory backend the same
// all-or-nothing behavior a SQL transaction gives the PostgreSQL backend.
type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
