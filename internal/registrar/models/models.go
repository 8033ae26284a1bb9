// Package models defines the registrar's persisted record types.
package models

import (
	"time"

	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
)

// NameRecord is the authoritative record for a claimed name. A name with no
// record is available; once a record exists its Owner is always a valid
// account until the record is deleted on release.
type NameRecord struct {
	ID    id.Identifier
	Owner id.Account

	// TokenController and Resolver are opaque references. The core stores
	// and returns them but never dereferences either.
	TokenController id.Account
	Resolver        id.Account

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNameRecord builds the record written at claim time. Controller and
// resolver start unset.
func NewNameRecord(identifier id.Identifier, owner id.Account, now time.Time) (*NameRecord, error) {
	if identifier.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "identifier is required")
	}
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeZeroAddress, "owner must not be the null account")
	}
	return &NameRecord{
		ID:        identifier,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StakeRecord is the refundable deposit held for a claimed name. Amount is
// locked at the cost in effect when the claim was made and is never revalued.
type StakeRecord struct {
	ID          id.Identifier
	Amount      id.Quantity
	DepositedAt time.Time
}
