// Package events defines the registrar's domain events and their publishers.
//
// Events are emitted after an operation has committed. Emission is fail-open:
// a publish failure is logged, never propagated, because events describe
// state, they do not constitute it.
package events

import (
	"context"
	"time"

	id "namevault/pkg/domain"
)

// Type discriminates domain events.
type Type string

const (
	TypeClaimed  Type = "name.claimed"
	TypeReleased Type = "name.released"
)

// Event captures one completed claim or release.
type Event struct {
	ID         string      `json:"id"`
	Type       Type        `json:"type"`
	Identifier string      `json:"identifier"`
	Name       string      `json:"name"`
	Account    id.Account  `json:"account"`
	Amount     id.Quantity `json:"amount"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher fans a domain event out to whatever sink is configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
