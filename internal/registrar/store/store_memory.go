package store

import (
	"context"
	"fmt"
	"sync"

	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
)

// InMemoryStore implements RecordStore with a map. Records are copied in and
// out so callers can never alias store-owned state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.Identifier]models.NameRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.Identifier]models.NameRecord)}
}

func (s *InMemoryStore) Create(ctx context.Context, record *models.NameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; ok {
		return fmt.Errorf("record %s: %w", record.ID, sentinel.ErrConflict)
	}
	s.records[record.ID] = *record
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, identifier id.Identifier) (*models.NameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[identifier]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", identifier, sentinel.ErrNotFound)
	}
	out := record
	return &out, nil
}

func (s *InMemoryStore) Update(ctx context.Context, record *models.NameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		return fmt.Errorf("record %s: %w", record.ID, sentinel.ErrNotFound)
	}
	s.records[record.ID] = *record
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, identifier id.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[identifier]; !ok {
		return fmt.Errorf("record %s: %w", identifier, sentinel.ErrNotFound)
	}
	delete(s.records, identifier)
	return nil
}
