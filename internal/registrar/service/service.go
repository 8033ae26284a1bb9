// Package service implements the registrar: the orchestrator of the name
// claim/release lifecycle and the only module permitted to drive the token
// issuer and the stake escrow.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"namevault/internal/registrar/escrow"
	"namevault/internal/registrar/events"
	registrarmetrics "namevault/internal/registrar/metrics"
	"namevault/internal/registrar/models"
	"namevault/internal/registrar/namehash"
	"namevault/internal/registrar/store"
	"namevault/internal/registrar/token"
	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/platform/reentrancy"
	"namevault/pkg/platform/sentinel"
)

// Service is the authoritative registry state machine. It owns the name
// record table, holds the once-granted capabilities for the issuer and the
// escrow, and carries the process-wide claim cost and reentrancy guard.
// Constructed once at service start; never ambient state.
type Service struct {
	records store.RecordStore
	issuer  *token.Issuer
	minter  *token.Minter
	escrow  *escrow.Escrow
	teller  *escrow.Teller
	guard   *reentrancy.Guard

	cost atomic.Int64

	tx      StoreTx
	events  events.Publisher
	metrics *registrarmetrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithEvents sets the domain event publisher.
func WithEvents(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *registrarmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTx sets the transactional boundary for multi-store mutations. Defaults
// to an in-memory coarse lock; SQL deployments pass store.NewSQLTx.
func WithTx(tx StoreTx) Option {
	return func(s *Service) { s.tx = tx }
}

// NewService wires the registrar. It claims the issuer and escrow
// capabilities itself, so after construction no other component can acquire
// mint/burn or deposit/withdraw rights.
func NewService(
	records store.RecordStore,
	issuer *token.Issuer,
	esc *escrow.Escrow,
	guard *reentrancy.Guard,
	initialCost id.Quantity,
	opts ...Option,
) (*Service, error) {
	minter, err := issuer.Capability()
	if err != nil {
		return nil, err
	}
	teller, err := esc.Capability()
	if err != nil {
		return nil, err
	}

	s := &Service{
		records: records,
		issuer:  issuer,
		minter:  minter,
		escrow:  esc,
		teller:  teller,
		guard:   guard,
		tracer:  otel.Tracer("namevault/registrar"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tx == nil {
		s.tx = newInMemoryStoreTx()
	}
	s.cost.Store(int64(initialCost))
	return s, nil
}

// Cost returns the price a claim deposits right now.
func (s *Service) Cost(ctx context.Context) id.Quantity {
	return id.Quantity(s.cost.Load())
}

// SetCost updates the process-wide claim price. Takes effect only for
// subsequent claims; stakes already held are never revalued.
//
// Note: there is no authorization check here; the gap is inherited from the
// source system and tracked in DESIGN.md.
func (s *Service) SetCost(ctx context.Context, newCost id.Quantity) error {
	if newCost < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "cost must not be negative")
	}
	old := s.cost.Swap(int64(newCost))
	s.logger.InfoContext(ctx, "claim cost updated",
		"old_cost", old,
		"new_cost", int64(newCost),
	)
	return nil
}

// IsAvailable reports whether a name can currently be claimed.
func (s *Service) IsAvailable(ctx context.Context, name string) (bool, error) {
	identifier := namehash.Hash(name)
	_, err := s.records.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return true, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "check availability")
	}
	return false, nil
}

// Record returns the name record for a claimed name.
func (s *Service) Record(ctx context.Context, name string) (*models.NameRecord, error) {
	record, err := s.records.Get(ctx, namehash.Hash(name))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "name %q is not claimed", name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load record")
	}
	return record, nil
}

// Supply returns the number of live ownership tokens, which equals the
// number of currently claimed names.
func (s *Service) Supply(ctx context.Context) (int64, error) {
	return s.issuer.TotalSupply(ctx)
}

// requireAvailable fails NameTaken when the identifier already has a record.
func (s *Service) requireAvailable(ctx context.Context, name string, identifier id.Identifier) error {
	_, err := s.records.Get(ctx, identifier)
	if err == nil {
		return dErrors.Newf(dErrors.CodeNameTaken, "name %q is already claimed", name)
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "check availability")
	}
	return nil
}

func (s *Service) recordFailure(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordFailure(operation, string(dErrors.CodeOf(err)))
}

// refreshSupplyGauge updates the live token gauge after a successful claim
// or release. Best effort.
func (s *Service) refreshSupplyGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if n, err := s.issuer.TotalSupply(ctx); err == nil {
		s.metrics.SetLiveTokens(n)
	}
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "event publish failed",
			"event_type", string(event.Type),
			"identifier", event.Identifier,
			"error", err,
		)
	}
}
