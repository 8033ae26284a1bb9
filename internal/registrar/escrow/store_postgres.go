package escrow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/platform/tx"
)

// PostgresStore persists stakes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for the stakes table:
//
//	CREATE TABLE stakes (
//	    id           TEXT PRIMARY KEY,
//	    amount       BIGINT NOT NULL,
//	    deposited_at TIMESTAMPTZ NOT NULL
//	);
const (
	insertStakeSQL = `INSERT INTO stakes (id, amount, deposited_at) VALUES ($1, $2, $3)`
	getStakeSQL    = `SELECT id, amount, deposited_at FROM stakes WHERE id = $1`
	deleteStakeSQL = `DELETE FROM stakes WHERE id = $1`
)

func (s *PostgresStore) Insert(ctx context.Context, stake models.StakeRecord) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, insertStakeSQL, stake.ID.String(), int64(stake.Amount), stake.DepositedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("stake %s: %w", stake.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert stake: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, identifier id.Identifier) (models.StakeRecord, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var (
		rawID  string
		amount int64
		stake  models.StakeRecord
	)
	err := q.QueryRowContext(ctx, getStakeSQL, identifier.String()).Scan(&rawID, &amount, &stake.DepositedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StakeRecord{}, fmt.Errorf("stake %s: %w", identifier, sentinel.ErrNotFound)
		}
		return models.StakeRecord{}, fmt.Errorf("get stake: %w", err)
	}
	stake.ID, err = id.ParseIdentifier(rawID)
	if err != nil {
		return models.StakeRecord{}, fmt.Errorf("get stake: %w", err)
	}
	stake.Amount = id.Quantity(amount)
	return stake, nil
}

func (s *PostgresStore) Delete(ctx context.Context, identifier id.Identifier) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, deleteStakeSQL, identifier.String())
	if err != nil {
		return fmt.Errorf("delete stake: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("stake %s: %w", identifier, sentinel.ErrNotFound)
	}
	return nil
}
