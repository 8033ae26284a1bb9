package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/platform/tx"
)

// PostgresStore persists tokens in PostgreSQL. Statements run on the context
// transaction when the registrar wraps an operation in one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for the tokens table:
//
//	CREATE TABLE ownership_tokens (
//	    id        TEXT PRIMARY KEY,
//	    holder    TEXT NOT NULL,
//	    minted_at TIMESTAMPTZ NOT NULL
//	);
const (
	insertTokenSQL = `INSERT INTO ownership_tokens (id, holder, minted_at) VALUES ($1, $2, $3)`
	getTokenSQL    = `SELECT id, holder, minted_at FROM ownership_tokens WHERE id = $1`
	setHolderSQL   = `UPDATE ownership_tokens SET holder = $2 WHERE id = $1`
	deleteTokenSQL = `DELETE FROM ownership_tokens WHERE id = $1`
	supplySQL      = `SELECT COUNT(*) FROM ownership_tokens`
)

func (s *PostgresStore) Insert(ctx context.Context, tok Token) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, insertTokenSQL, tok.ID.String(), tok.Holder.String(), tok.MintedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("token %s: %w", tok.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, identifier id.Identifier) (Token, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var (
		rawID  string
		holder string
		tok    Token
	)
	err := q.QueryRowContext(ctx, getTokenSQL, identifier.String()).Scan(&rawID, &holder, &tok.MintedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Token{}, fmt.Errorf("token %s: %w", identifier, sentinel.ErrNotFound)
		}
		return Token{}, fmt.Errorf("get token: %w", err)
	}
	tok.ID, err = id.ParseIdentifier(rawID)
	if err != nil {
		return Token{}, fmt.Errorf("get token: %w", err)
	}
	tok.Holder = id.Account(holder)
	return tok, nil
}

func (s *PostgresStore) SetHolder(ctx context.Context, identifier id.Identifier, holder id.Account) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, setHolderSQL, identifier.String(), holder.String())
	if err != nil {
		return fmt.Errorf("set token holder: %w", err)
	}
	return requireOneRow(res, identifier)
}

func (s *PostgresStore) Delete(ctx context.Context, identifier id.Identifier) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, deleteTokenSQL, identifier.String())
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return requireOneRow(res, identifier)
}

func (s *PostgresStore) TotalSupply(ctx context.Context) (int64, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var n int64
	if err := q.QueryRowContext(ctx, supplySQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}

func requireOneRow(res sql.Result, identifier id.Identifier) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("token %s: %w", identifier, sentinel.ErrNotFound)
	}
	return nil
}
