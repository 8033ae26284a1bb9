package escrow

import (
	"context"
	"fmt"
	"sync"

	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
)

// InMemoryStore implements Store with a map. Development and test backend.
type InMemoryStore struct {
	mu     sync.RWMutex
	stakes map[id.Identifier]models.StakeRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{stakes: make(map[id.Identifier]models.StakeRecord)}
}

func (s *InMemoryStore) Insert(ctx context.Context, stake models.StakeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stakes[stake.ID]; ok {
		return fmt.Errorf("stake %s: %w", stake.ID, sentinel.ErrConflict)
	}
	s.stakes[stake.ID] = stake
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, identifier id.Identifier) (models.StakeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stake, ok := s.stakes[identifier]
	if !ok {
		return models.StakeRecord{}, fmt.Errorf("stake %s: %w", identifier, sentinel.ErrNotFound)
	}
	return stake, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, identifier id.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stakes[identifier]; !ok {
		return fmt.Errorf("stake %s: %w", identifier, sentinel.ErrNotFound)
	}
	delete(s.stakes, identifier)
	return nil
}
