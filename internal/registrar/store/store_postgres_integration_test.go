//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"namevault/internal/registrar/models"
	"namevault/internal/registrar/namehash"
	"namevault/internal/registrar/store"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "name_records", "stakes", "ownership_tokens")
	s.Require().NoError(err)
}

func newTestRecord(name string, owner id.Account) *models.NameRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.NameRecord{
		ID:        namehash.Hash(name),
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	record := newTestRecord("alice", "acct-a")

	s.Require().NoError(s.store.Create(ctx, record))

	got, err := s.store.Get(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.ID, got.ID)
	s.Equal(id.Account("acct-a"), got.Owner)
	s.True(got.TokenController.IsZero())
	s.WithinDuration(record.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *PostgresStoreSuite) TestCreateDuplicateConflicts() {
	ctx := context.Background()
	record := newTestRecord("alice", "acct-a")

	s.Require().NoError(s.store.Create(ctx, record))

	err := s.store.Create(ctx, newTestRecord("alice", "acct-b"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestConcurrentCreateSingleWinner() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			owner := id.Account("acct-" + string(rune('a'+idx%26)))
			err := s.store.Create(ctx, newTestRecord("contested", owner))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should win")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	record := newTestRecord("alice", "acct-a")
	s.Require().NoError(s.store.Create(ctx, record))

	record.Owner = "acct-b"
	record.Resolver = "resolver-1"
	record.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.store.Update(ctx, record))

	got, err := s.store.Get(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(id.Account("acct-b"), got.Owner)
	s.Equal(id.Account("resolver-1"), got.Resolver)
}

func (s *PostgresStoreSuite) TestUpdateMissingRecord() {
	err := s.store.Update(context.Background(), newTestRecord("ghost", "acct-a"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	record := newTestRecord("alice", "acct-a")
	s.Require().NoError(s.store.Create(ctx, record))

	s.Require().NoError(s.store.Delete(ctx, record.ID))

	_, err := s.store.Get(ctx, record.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(ctx, record.ID), sentinel.ErrNotFound)
}

// TestTxRollbackDiscardsWrites verifies that a record created inside an
// aborted transaction never becomes visible.
func (s *PostgresStoreSuite) TestTxRollbackDiscardsWrites() {
	ctx := context.Background()
	record := newTestRecord("alice", "acct-a")
	sqlTx := store.NewSQLTx(s.postgres.DB)

	boom := errors.New("abort")
	err := sqlTx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, record); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	_, err = s.store.Get(ctx, record.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
