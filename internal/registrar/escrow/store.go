package escrow

import (
	"context"

	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
)

// Store owns the stake table. A stake exists iff the name is claimed with a
// live token; the registrar's operation ordering maintains that invariant.
type Store interface {
	// Insert records a stake. Returns sentinel.ErrConflict if one exists.
	Insert(ctx context.Context, stake models.StakeRecord) error
	// Get returns the stake, or sentinel.ErrNotFound.
	Get(ctx context.Context, identifier id.Identifier) (models.StakeRecord, error)
	// Delete removes the stake. Returns sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, identifier id.Identifier) error
}
