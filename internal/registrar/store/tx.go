package store

import (
	"context"
	"database/sql"
	"fmt"

	"namevault/pkg/platform/tx"
)

// SQLTx runs a function inside a database transaction. The transaction is
// carried in context so every store touched by the function joins it.
type SQLTx struct {
	db *sql.DB
}

func NewSQLTx(db *sql.DB) *SQLTx {
	return &SQLTx{db: db}
}

func (t *SQLTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	dbTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txCtx := tx.WithTx(ctx, dbTx)
	if err := fn(txCtx); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
