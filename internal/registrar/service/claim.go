package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"namevault/internal/registrar/events"
	"namevault/internal/registrar/models"
	"namevault/internal/registrar/namehash"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/requestcontext"
)

// ClaimResult is returned from a successful claim.
type ClaimResult struct {
	Record    models.NameRecord
	Deposited id.Quantity
}

// Claim atomically establishes ownership of a name for the caller: it mints
// the ownership token, writes the name record, and deposits the current cost
// as a refundable stake. Either all three happen or none do.
func (s *Service) Claim(ctx context.Context, caller id.Account, name string) (*ClaimResult, error) {
	start := time.Now()
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller account is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}

	exit, err := s.guard.Enter()
	if err != nil {
		s.recordFailure("claim", dErrors.New(dErrors.CodeReentrantCall, ""))
		return nil, dErrors.New(dErrors.CodeReentrantCall, "a registrar operation is already in progress")
	}
	defer exit()

	ctx, span := s.tracer.Start(ctx, "registrar.claim")
	defer span.End()

	identifier := namehash.Hash(name)
	span.SetAttributes(attribute.String("name.identifier", identifier.String()))

	// Cost is read once at entry; a concurrent SetCost affects later claims,
	// never this one.
	cost := s.Cost(ctx)

	var record *models.NameRecord
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u := newUnit(s.logger)

		if err := s.requireAvailable(txCtx, name, identifier); err != nil {
			return err
		}

		if err := s.minter.Mint(txCtx, caller, identifier); err != nil {
			if dErrors.HasCode(err, dErrors.CodeAlreadyExists) {
				// Token live without record: treat as taken rather than
				// leak the invariant breach to the caller.
				return dErrors.Newf(dErrors.CodeNameTaken, "name %q is already claimed", name)
			}
			return err
		}
		u.compensate(func(cctx context.Context) error {
			return s.minter.Burn(cctx, identifier, caller)
		})

		rec, err := models.NewNameRecord(identifier, caller, requestcontext.Now(txCtx))
		if err != nil {
			return u.unwind(txCtx, err)
		}
		if err := s.records.Create(txCtx, rec); err != nil {
			return u.unwind(txCtx, dErrors.Wrap(err, dErrors.CodeInternal, "write name record"))
		}
		u.compensate(func(cctx context.Context) error {
			return s.records.Delete(cctx, identifier)
		})

		if err := s.teller.Deposit(txCtx, identifier, cost, caller); err != nil {
			return u.unwind(txCtx, err)
		}

		record = rec
		return nil
	})
	if err != nil {
		s.recordFailure("claim", err)
		return nil, err
	}

	s.emit(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.TypeClaimed,
		Identifier: identifier.String(),
		Name:       name,
		Account:    caller,
		Amount:     cost,
		OccurredAt: requestcontext.Now(ctx),
	})
	if s.metrics != nil {
		s.metrics.ClaimsTotal.Inc()
		s.metrics.ObserveClaim(start)
	}
	s.refreshSupplyGauge(ctx)

	s.logger.InfoContext(ctx, "name claimed",
		"identifier", identifier.String(),
		"owner", caller.String(),
		"deposited", int64(cost),
	)
	return &ClaimResult{Record: *record, Deposited: cost}, nil
}
