package usecase

import (
	"context"

	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

type ListReleasesUsecase interface {
	Execute(ctx context.Context) ([]*entity.Release, error)
}

type listReleasesUsecaseImpl struct {
	store *repository.Store
}

func NewListReleasesUsecase(i *do.Injector) (ListReleasesUsecase, error) {
	return &listReleasesUsecaseImpl{
		store: do.MustInvoke[*repository.Store](i),
	}, nil
}

// Execute implements ListReleasesUsecase. Newest-updated first.
func (u *listReleasesUsecaseImpl) Execute(ctx context.Context) ([]*entity.Release, error) {
	return u.store.Releases.List(ctx)
}
