package store

import (
	"context"

	"namevault/internal/registrar/models"
	id "namevault/pkg/domain"
)

// RecordStore owns the name record table. The registrar service is its only
// writer; transports and other modules read through the service.
type RecordStore interface {
	// Create writes the record for a fresh claim. Returns
	// sentinel.ErrConflict if a record already exists for the identifier.
	Create(ctx context.Context, record *models.NameRecord) error
	// Get returns a copy of the record, or sentinel.ErrNotFound.
	Get(ctx context.Context, identifier id.Identifier) (*models.NameRecord, error)
	// Update overwrites an existing record. Returns sentinel.ErrNotFound if
	// the identifier has no record.
	Update(ctx context.Context, record *models.NameRecord) error
	// Delete removes the record. Returns sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, identifier id.Identifier) error
}
