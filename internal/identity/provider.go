// Package identity resolves bearer credentials to authenticated principals.
package identity

import (
	"context"
	"time"

	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

// Provider supplies the authenticated principal for a request credential.
type Provider interface {
	PrincipalByToken(ctx context.Context, token string) (*entity.Principal, error)
}

type storeProviderImpl struct {
	store *repository.Store
	now   func() time.Time
}

func NewProvider(i *do.Injector) (Provider, error) {
	return &storeProviderImpl{
		store: do.MustInvoke[*repository.Store](i),
		now:   time.Now,
	}, nil
}

// NewStoreProvider builds a provider over an explicit store. Tests use it.
func NewStoreProvider(store *repository.Store, now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return &storeProviderImpl{store: store, now: now}
}

// PrincipalByToken implements Provider. Expired or deactivated tokens are
// indistinguishable from unknown ones.
func (p *storeProviderImpl) PrincipalByToken(ctx context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, entity.ErrUnauthorized
	}
	acc, tok, err := p.store.Accounts.GetByToken(ctx, token)
	if err != nil {
		return nil, entity.ErrUnauthorized
	}
	if !tok.IsValid(p.now()) {
		return nil, entity.ErrUnauthorized
	}
	return acc.Principal(), nil
}
