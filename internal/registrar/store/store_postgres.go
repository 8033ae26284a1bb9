package store

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

// PostgresStore persists name records in PostgreSQL. Statements run on the
// context transaction when present so claim and release stay atomic across
// the record, stake, and token tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for the records table:
//
//	CREATE TABLE name_records (
//	    id               TEXT PRIMARY KEY,
//	    owner_account    TEXT NOT NULL,
//	    token_controller TEXT NOT NULL DEFAULT '',
//	    resolver         TEXT NOT NULL DEFAULT '',
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
const (
	createRecordSQL = `
		INSERT INTO name_records (id, owner_account, token_controller, resolver, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	getRecordSQL = `
		SELECT id, owner_account, token_controller, resolver, created_at, updated_at
		FROM name_records WHERE id = $1`
	updateRecordSQL = `
		UPDATE name_records
		SET owner_account = $2, token_controller = $3, resolver = $4, updated_at = $5
		WHERE id = $1`
	deleteRecordSQL = `DELETE FROM name_records WHERE id = $1`
)

func (s *PostgresStore) Create(ctx context.Context, record *models.NameRecord) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, createRecordSQL,
		record.ID.String(),
		record.Owner.String(),
		record.TokenController.String(),
		record.Resolver.String(),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("record %s: %w", record.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, identifier id.Identifier) (*models.NameRecord, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var (
		rawID      string
		owner      string
		controller string
		resolver   string
		record     models.NameRecord
	)
	err := q.QueryRowContext(ctx, getRecordSQL, identifier.String()).Scan(
		&rawID, &owner, &controller, &resolver, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", identifier, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	record.ID, err = id.ParseIdentifier(rawID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	record.Owner = id.Account(owner)
	record.TokenController = id.Account(controller)
	record.Resolver = id.Account(resolver)
	return &record, nil
}

func (s *PostgresStore) Update(ctx context.Context, record *models.NameRecord) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, updateRecordSQL,
		record.ID.String(),
		record.Owner.String(),
		record.TokenController.String(),
		record.Resolver.String(),
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return requireOneRow(res, record.ID)
}

func (s *PostgresStore) Delete(ctx context.Context, identifier id.Identifier) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, deleteRecordSQL, identifier.String())
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return requireOneRow(res, identifier)
}

func requireOneRow(res sql.Result, identifier id.Identifier) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: %w", identifier, sentinel.ErrNotFound)
	}
	return nil
}
