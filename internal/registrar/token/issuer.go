// Package token issues and destroys the non-fungible tokens that prove title
// to a claimed name.
//
// Mint and burn are privileged: they are reachable only through the *Minter
// capability handle, which the issuer grants exactly once at wiring time (to
// the registrar). There is no ambient identity check; holding the handle is
// the authorization.
package token

import (
	"context"
	"errors"
	"sync"

	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
	"namevault/pkg/platform/sentinel"
	"namevault/pkg/requestcontext"
)

// Issuer is the public read surface of the ownership token module.
type Issuer struct {
	store Store

	mu      sync.Mutex
	granted bool
}

// NewIssuer creates an issuer over the given token store.
func NewIssuer(store Store) *Issuer {
	return &Issuer{store: store}
}

// Capability grants the privileged mint/burn handle. It succeeds exactly
// once; later claims fail Unauthorized so a second component can never
// acquire mint rights.
func (i *Issuer) Capability() (*Minter, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.granted {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "issuer capability already granted")
	}
	i.granted = true
	return &Minter{issuer: i}, nil
}

// HolderOf returns the current holder of the token for an identifier.
func (i *Issuer) HolderOf(ctx context.Context, identifier id.Identifier) (id.Account, error) {
	tok, err := i.store.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.ZeroAccount, dErrors.Newf(dErrors.CodeNoSuchToken, "no live token for %s", identifier)
		}
		return id.ZeroAccount, dErrors.Wrap(err, dErrors.CodeInternal, "look up token holder")
	}
	return tok.Holder, nil
}

// TotalSupply returns the number of live tokens.
func (i *Issuer) TotalSupply(ctx context.Context) (int64, error) {
	n, err := i.store.TotalSupply(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "read total supply")
	}
	return n, nil
}

// Transfer reassigns a live token. Holders do this independently of the
// registrar, which is why the registrar always re-derives the current holder
// instead of caching it.
func (i *Issuer) Transfer(ctx context.Context, identifier id.Identifier, from, to id.Account) error {
	if to.IsZero() {
		return dErrors.New(dErrors.CodeZeroAddress, "cannot transfer to the null account")
	}
	holder, err := i.HolderOf(ctx, identifier)
	if err != nil {
		return err
	}
	if holder != from {
		return dErrors.Newf(dErrors.CodeNotOwner, "token %s is not held by %s", identifier, from)
	}
	if err := i.store.SetHolder(ctx, identifier, to); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "reassign token")
	}
	return nil
}

// Minter is the once-granted capability for mint and burn.
type Minter struct {
	issuer *Issuer
}

// Mint creates the token for an identifier and assigns it to the recipient.
// Fails AlreadyExists if a token with that id is live.
func (m *Minter) Mint(ctx context.Context, to id.Account, identifier id.Identifier) error {
	if to.IsZero() {
		return dErrors.New(dErrors.CodeZeroAddress, "cannot mint to the null account")
	}
	tok := Token{
		ID:       identifier,
		Holder:   to,
		MintedAt: requestcontext.Now(ctx),
	}
	if err := m.issuer.store.Insert(ctx, tok); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "token %s is already live", identifier)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "mint token")
	}
	return nil
}

// Burn destroys the token for an identifier. Fails NotOwner unless the
// current holder matches expectedHolder, so a stale caller can never burn a
// token out from under a new holder.
func (m *Minter) Burn(ctx context.Context, identifier id.Identifier, expectedHolder id.Account) error {
	holder, err := m.issuer.HolderOf(ctx, identifier)
	if err != nil {
		return err
	}
	if holder != expectedHolder {
		return dErrors.Newf(dErrors.CodeNotOwner, "token %s is not held by %s", identifier, expectedHolder)
	}
	if err := m.issuer.store.Delete(ctx, identifier); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "burn token")
	}
	return nil
}
