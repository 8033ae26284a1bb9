package service

import (
	"context"
	"errors"

	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/requestcontext"
)

// SetOwner overwrites the record's owner field. Authorized by CURRENT token
// holdership, re-checked live on every call.
func (s *Service) SetOwner(ctx context.Context, caller id.Account, identifier id.Identifier, newOwner id.Account) error {
	if newOwner.IsZero() {
		return dErrors.New(dErrors.CodeZeroAddress, "owner must not be the null account")
	}
	return s.setField(ctx, caller, identifier, func(rec recordFields) {
		*rec.owner = newOwner
	})
}

// SetTokenController overwrites the opaque token controller reference.
func (s *Service) SetTokenController(ctx context.Context, caller id.Account, identifier id.Identifier, controller id.Account) error {
	return s.setField(ctx, caller, identifier, func(rec recordFields) {
		*rec.controller = controller
	})
}

// SetResolver overwrites the opaque resolver reference.
func (s *Service) SetResolver(ctx context.Context, caller id.Account, identifier id.Identifier, resolver id.Account) error {
	return s.setField(ctx, caller, identifier, func(rec recordFields) {
		*rec.resolver = resolver
	})
}

type recordFields struct {
	owner      *id.Account
	controller *id.Account
	resolver   *id.Account
}

func (s *Service) setField(ctx context.Context, caller id.Account, identifier id.Identifier, mutate func(recordFields)) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller account is required")
	}

	holder, err := s.issuer.HolderOf(ctx, identifier)
	if err != nil {
		return err
	}
	if holder != caller {
		return dErrors.Newf(dErrors.CodeNotOwner, "identifier %s is not held by the caller", identifier)
	}

	record, err := s.records.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "no record for %s", identifier)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "load record")
	}

	mutate(recordFields{
		owner:      &record.Owner,
		controller: &record.TokenController,
		resolver:   &record.Resolver,
	})
	record.UpdatedAt = requestcontext.Now(ctx)

	if err := s.records.Update(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update record")
	}
	return nil
}
