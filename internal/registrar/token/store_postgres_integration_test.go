//go:build integration

package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"namevault/internal/registrar/namehash"
	"namevault/internal/registrar/token"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/testutil/containers"
)

type PostgresTokenSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *token.PostgresStore
}

func TestPostgresTokenSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTokenSuite))
}

func (s *PostgresTokenSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = token.NewPostgres(s.postgres.DB)
}

func (s *PostgresTokenSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "ownership_tokens")
	s.Require().NoError(err)
}

func newToken(name string, holder id.Account) token.Token {
	return token.Token{
		ID:       namehash.Hash(name),
		Holder:   holder,
		MintedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresTokenSuite) TestInsertAndGet() {
	ctx := context.Background()
	tok := newToken("alice", "acct-a")

	s.Require().NoError(s.store.Insert(ctx, tok))

	got, err := s.store.Get(ctx, tok.ID)
	s.Require().NoError(err)
	s.Equal(tok.ID, got.ID)
	s.Equal(id.Account("acct-a"), got.Holder)
}

func (s *PostgresTokenSuite) TestInsertDuplicateConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, newToken("alice", "acct-a")))

	err := s.store.Insert(ctx, newToken("alice", "acct-b"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresTokenSuite) TestSetHolder() {
	ctx := context.Background()
	tok := newToken("alice", "acct-a")
	s.Require().NoError(s.store.Insert(ctx, tok))

	s.Require().NoError(s.store.SetHolder(ctx, tok.ID, "acct-b"))

	got, err := s.store.Get(ctx, tok.ID)
	s.Require().NoError(err)
	s.Equal(id.Account("acct-b"), got.Holder)
}

func (s *PostgresTokenSuite) TestSetHolderMissingToken() {
	err := s.store.SetHolder(context.Background(), namehash.Hash("ghost"), "acct-b")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresTokenSuite) TestDeleteAndSupply() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, newToken("alice", "acct-a")))
	s.Require().NoError(s.store.Insert(ctx, newToken("bob", "acct-b")))

	n, err := s.store.TotalSupply(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	s.Require().NoError(s.store.Delete(ctx, namehash.Hash("alice")))

	n, err = s.store.TotalSupply(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	s.Require().ErrorIs(s.store.Delete(ctx, namehash.Hash("alice")), sentinel.ErrNotFound)
}
