package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"namevault/internal/registrar/events"
	"namevault/internal/registrar/namehash"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/requestcontext"
)

// ReleaseResult is returned from a successful release.
type ReleaseResult struct {
	Refunded id.Quantity
}

// Release relinquishes a claimed name: it deletes the record, refunds the
// stake deposited at claim time to the caller, and burns the ownership
// token. Only the CURRENT token holder may release; holdership is re-derived
// here, never taken from the record, because the token can change hands
// independently of the registry.
//
// The record is deleted before the value-returning push so "no longer
// claimed" is visible before any external code can run.
func (s *Service) Release(ctx context.Context, caller id.Account, name string) (*ReleaseResult, error) {
	start := time.Now()
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller account is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}

	exit, err := s.guard.Enter()
	if err != nil {
		s.recordFailure("release", dErrors.New(dErrors.CodeReentrantCall, ""))
		return nil, dErrors.New(dErrors.CodeReentrantCall, "a registrar operation is already in progress")
	}
	defer exit()

	ctx, span := s.tracer.Start(ctx, "registrar.release")
	defer span.End()

	identifier := namehash.Hash(name)
	span.SetAttributes(attribute.String("name.identifier", identifier.String()))

	holder, err := s.issuer.HolderOf(ctx, identifier)
	if err != nil {
		s.recordFailure("release", err)
		return nil, err
	}
	if holder != caller {
		err := dErrors.Newf(dErrors.CodeNotOwner, "name %q is not held by the caller", name)
		s.recordFailure("release", err)
		return nil, err
	}

	var refunded id.Quantity
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u := newUnit(s.logger)

		record, err := s.records.Get(txCtx, identifier)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "load record for release")
		}
		amount, err := s.escrow.StakeOf(txCtx, identifier)
		if err != nil {
			return err
		}

		if err := s.records.Delete(txCtx, identifier); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "delete name record")
		}
		u.compensate(func(cctx context.Context) error {
			return s.records.Create(cctx, record)
		})

		if err := s.teller.Withdraw(txCtx, identifier, caller); err != nil {
			return u.unwind(txCtx, err)
		}
		u.compensate(func(cctx context.Context) error {
			return s.teller.Deposit(cctx, identifier, amount, caller)
		})

		if err := s.minter.Burn(txCtx, identifier, caller); err != nil {
			return u.unwind(txCtx, err)
		}

		refunded = amount
		return nil
	})
	if err != nil {
		s.recordFailure("release", err)
		return nil, err
	}

	s.emit(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.TypeReleased,
		Identifier: identifier.String(),
		Name:       name,
		Account:    caller,
		Amount:     refunded,
		OccurredAt: requestcontext.Now(ctx),
	})
	if s.metrics != nil {
		s.metrics.ReleasesTotal.Inc()
		s.metrics.ObserveRelease(start)
	}
	s.refreshSupplyGauge(ctx)

	s.logger.InfoContext(ctx, "name released",
		"identifier", identifier.String(),
		"account", caller.String(),
		"refunded", int64(refunded),
	)
	return &ReleaseResult{Refunded: refunded}, nil
}
