package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/vcs"
)

// ReleaseDetail is a release plus the ref-enriched constants for the
// services it touches, which the edit form needs for branch/tag pickers.
type ReleaseDetail struct {
	Release   *entity.Release       `json:"release"`
	Constants []entity.ConstantInfo `json:"constants"`
}

type GetReleaseUsecase interface {
	Execute(ctx context.Context, u uuid.UUID) (*ReleaseDetail, error)
}

type getReleaseUsecaseImpl struct {
	store     *repository.Store
	validator vcs.Validator
}

func NewGetReleaseUsecase(i *do.Injector) (GetReleaseUsecase, error) {
	return &getReleaseUsecaseImpl{
		store:     do.MustInvoke[*repository.Store](i),
		validator: do.MustInvoke[vcs.Validator](i),
	}, nil
}

// Execute implements GetReleaseUsecase.
func (u *getReleaseUsecaseImpl) Execute(ctx context.Context, id uuid.UUID) (*ReleaseDetail, error) {
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	services := lo.Uniq(lo.Map(rel.Items, func(it *entity.ReleaseItem, _ int) string {
		return it.Service
	}))
	constants, err := u.store.Constants.ListByServices(ctx, services)
	if err != nil {
		return nil, err
	}

	return &ReleaseDetail{
		Release:   rel,
		Constants: enrichConstants(ctx, u.validator, constants),
	}, nil
}
