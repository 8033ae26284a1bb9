package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"namevault/internal/registrar/models"
	"namevault/internal/registrar/namehash"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
)

type RecordStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *RecordStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestRecordStoreSuite(t *testing.T) {
	suite.Run(t, new(RecordStoreSuite))
}

func (s *RecordStoreSuite) newRecord(name string, owner id.Account) *models.NameRecord {
	record, err := models.NewNameRecord(namehash.Hash(name), owner, time.Now())
	s.Require().NoError(err)
	return record
}

func (s *RecordStoreSuite) TestCreateAndGet() {
	s.Run("creates and finds by identifier", func() {
		record := s.newRecord("alice", "acct-a")
		s.Require().NoError(s.store.Create(s.ctx, record))

		found, err := s.store.Get(s.ctx, record.ID)
		s.Require().NoError(err)
		s.Equal(record.Owner, found.Owner)
	})

	s.Run("returns ErrNotFound for unknown identifier", func() {
		_, err := s.store.Get(s.ctx, namehash.Hash("missing"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate identifier", func() {
		record := s.newRecord("alice", "acct-b")
		err := s.store.Create(s.ctx, record)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("returned record is a copy", func() {
		record := s.newRecord("copy-check", "acct-a")
		s.Require().NoError(s.store.Create(s.ctx, record))

		found, err := s.store.Get(s.ctx, record.ID)
		s.Require().NoError(err)
		found.Owner = "acct-tampered"

		again, err := s.store.Get(s.ctx, record.ID)
		s.Require().NoError(err)
		s.Equal(id.Account("acct-a"), again.Owner)
	})
}

func (s *RecordStoreSuite) TestUpdate() {
	record := s.newRecord("bob", "acct-b")
	s.Require().NoError(s.store.Create(s.ctx, record))

	s.Run("overwrites fields", func() {
		record.Resolver = "resolver-1"
		record.UpdatedAt = time.Now()
		s.Require().NoError(s.store.Update(s.ctx, record))

		found, err := s.store.Get(s.ctx, record.ID)
		s.Require().NoError(err)
		s.Equal(id.Account("resolver-1"), found.Resolver)
	})

	s.Run("rejects update of absent record", func() {
		ghost := s.newRecord("ghost", "acct-g")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})
}

func (s *RecordStoreSuite) TestDelete() {
	record := s.newRecord("carol", "acct-c")
	s.Require().NoError(s.store.Create(s.ctx, record))

	s.Require().NoError(s.store.Delete(s.ctx, record.ID))
	_, err := s.store.Get(s.ctx, record.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, record.ID), sentinel.ErrNotFound)
}
