package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/notify"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/vcs"
)

type CreateReleaseUsecase interface {
	Execute(ctx context.Context, in *CreateReleaseInput, principal *entity.Principal) (*entity.Release, error)
}

type createReleaseUsecaseImpl struct {
	store     *repository.Store
	validator vcs.Validator
	notifier  notify.Notifier
}

func NewCreateReleaseUsecase(i *do.Injector) (CreateReleaseUsecase, error) {
	return &createReleaseUsecaseImpl{
		store:     do.MustInvoke[*repository.Store](i),
		validator: do.MustInvoke[vcs.Validator](i),
		notifier:  do.MustInvoke[notify.Notifier](i),
	}, nil
}

// Execute implements CreateReleaseUsecase. The whole aggregate is written in
// one transaction; a ghost branch anywhere means nothing is written at all.
func (u *createReleaseUsecaseImpl) Execute(ctx context.Context, in *CreateReleaseInput, principal *entity.Principal) (*entity.Release, error) {
	if !principal.HasRole(entity.RoleReleaseAdmin) {
		return nil, entity.ErrUnauthorized
	}
	if err := validateBranches(ctx, u.validator, in.Release.Items); err != nil {
		return nil, err
	}

	groups := lo.Uniq(append(
		lo.Map(in.ApproverGroups, func(g string, _ int) entity.RoleGroup {
			return entity.RoleGroup(g)
		}),
		entity.MandatoryApproverGroups...,
	))

	var created *entity.Release
	err := u.store.Atomic(ctx, func(tx *repository.Store) error {
		rel, err := tx.Releases.Create(ctx, &entity.Release{
			UUID:             uuid.New(),
			Name:             in.Release.Name,
			CreatedBy:        principal.Email,
			UpdatedBy:        principal.Email,
			StartWindow:      in.Release.StartWindow,
			EndWindow:        in.Release.EndWindow,
			DeploymentStatus: entity.DeploymentStatusUnknown,
		})
		if err != nil {
			return err
		}
		for _, item := range in.Release.Items {
			if _, err := tx.Releases.CreateItem(ctx, &entity.ReleaseItem{
				ReleaseID:     rel.ID,
				Repo:          item.Repo,
				Service:       item.Service,
				ReleaseBranch: item.ReleaseBranch,
				HotfixBranch:  item.HotfixBranch,
				FeatureNumber: item.FeatureNumber,
				Tag:           item.Tag,
				SpecialNotes:  item.SpecialNotes,
				DevopsNotes:   item.DevopsNotes,
			}); err != nil {
				return err
			}
		}
		for _, item := range in.Release.TalendItems {
			if _, err := tx.Releases.CreateTalendItem(ctx, &entity.TalendReleaseItem{
				ReleaseID:       rel.ID,
				JobName:         item.JobName,
				PackageLocation: item.PackageLocation,
				FeatureNumber:   item.FeatureNumber,
				SpecialNotes:    item.SpecialNotes,
			}); err != nil {
				return err
			}
		}
		for _, group := range groups {
			if _, err := tx.Releases.CreateApprover(ctx, &entity.Approver{
				ReleaseID: rel.ID,
				Group:     group,
			}); err != nil {
				return err
			}
		}
		for _, target := range in.Release.Targets {
			if err := tx.Releases.CreateTarget(ctx, rel.ID, target); err != nil {
				return err
			}
		}

		created, err = tx.Releases.GetByUUID(ctx, rel.UUID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := u.notifier.ReleaseCreated(ctx, created); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("release-created notification failed")
	}
	return created, nil
}
