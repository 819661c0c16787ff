package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/vcs"
)

type ListConstantsUsecase interface {
	// Execute lists constants, filtered to the given services when any are
	// supplied, each enriched with live tags and branches.
	Execute(ctx context.Context, services []string) ([]entity.ConstantInfo, error)
}

type listConstantsUsecaseImpl struct {
	store     *repository.Store
	validator vcs.Validator
}

func NewListConstantsUsecase(i *do.Injector) (ListConstantsUsecase, error) {
	return &listConstantsUsecaseImpl{
		store:     do.MustInvoke[*repository.Store](i),
		validator: do.MustInvoke[vcs.Validator](i),
	}, nil
}

// Execute implements ListConstantsUsecase.
func (u *listConstantsUsecaseImpl) Execute(ctx context.Context, services []string) ([]entity.ConstantInfo, error) {
	var (
		constants []*entity.Constant
		err       error
	)
	if len(services) > 0 {
		constants, err = u.store.Constants.ListByServices(ctx, services)
	} else {
		constants, err = u.store.Constants.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return enrichConstants(ctx, u.validator, constants), nil
}

// enrichConstants attaches live refs to each constant. A repo whose host is
// unreachable just gets empty lists; listing never fails because one repo
// is down.
func enrichConstants(ctx context.Context, validator vcs.Validator, constants []*entity.Constant) []entity.ConstantInfo {
	log := zerolog.Ctx(ctx)
	infos := make([]entity.ConstantInfo, 0, len(constants))
	for _, c := range constants {
		info := entity.ConstantInfo{Constant: *c, Tags: []string{}, Branches: []string{}}
		if tags, err := validator.ListTags(ctx, c.Repo); err == nil {
			info.Tags = tags
		} else {
			log.Warn().Err(err).Str("repo", c.Repo).Msg("listing tags failed")
		}
		if branches, err := validator.ListBranches(ctx, c.Repo); err == nil {
			info.Branches = branches
		} else {
			log.Warn().Err(err).Str("repo", c.Repo).Msg("listing branches failed")
		}
		infos = append(infos, info)
	}
	return infos
}
