package token

import (
	"context"
	"fmt"
	"sync"

	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
)

// InMemoryStore implements Store with a plain map and an explicit supply
// counter. Suitable for development and tests; use PostgresStore for
// durable deployments.
type InMemoryStore struct {
	mu     sync.RWMutex
	tokens map[id.Identifier]Token
	supply int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tokens: make(map[id.Identifier]Token)}
}

func (s *InMemoryStore) Insert(ctx context.Context, tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[tok.ID]; ok {
		return fmt.Errorf("token %s: %w", tok.ID, sentinel.ErrConflict)
	}
	s.tokens[tok.ID] = tok
	s.supply++
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, identifier id.Identifier) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[identifier]
	if !ok {
		return Token{}, fmt.Errorf("token %s: %w", identifier, sentinel.ErrNotFound)
	}
	return tok, nil
}

func (s *InMemoryStore) SetHolder(ctx context.Context, identifier id.Identifier, holder id.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[identifier]
	if !ok {
		return fmt.Errorf("token %s: %w", identifier, sentinel.ErrNotFound)
	}
	tok.Holder = holder
	s.tokens[identifier] = tok
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, identifier id.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[identifier]; !ok {
		return fmt.Errorf("token %s: %w", identifier, sentinel.ErrNotFound)
	}
	delete(s.tokens, identifier)
	s.supply--
	if s.supply < 0 {
		// Supply is derived from guarded mints and burns; going negative
		// means the invariant machinery is broken, not the request.
		return fmt.Errorf("total supply below zero: %w", sentinel.ErrInvalidState)
	}
	return nil
}

func (s *InMemoryStore) TotalSupply(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supply, nil
}
