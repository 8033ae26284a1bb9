package token

import (
	"context"
	"time"

	id "namevault/pkg/domain"
)

// Token is one live ownership token. Exactly one exists per claimed
// identifier; the identifier doubles as the token id.
type Token struct {
	ID       id.Identifier
	Holder   id.Account
	MintedAt time.Time
}

// Store owns the token table and its total-supply counter. No other module
// holds a copy of this state; all reads are live queries.
type Store interface {
	// Insert records a newly minted token. Returns sentinel.ErrConflict if a
	// token with that id is already live.
	Insert(ctx context.Context, tok Token) error
	// Get returns the live token, or sentinel.ErrNotFound.
	Get(ctx context.Context, identifier id.Identifier) (Token, error)
	// SetHolder reassigns a live token. Returns sentinel.ErrNotFound if absent.
	SetHolder(ctx context.Context, identifier id.Identifier, holder id.Account) error
	// Delete removes a live token. Returns sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, identifier id.Identifier) error
	// TotalSupply returns the live-mint minus live-burn count. Never negative.
	TotalSupply(ctx context.Context) (int64, error)
}
