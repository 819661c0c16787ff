package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/vcs"
)

type UpdateReleaseUsecase interface {
	Execute(ctx context.Context, u uuid.UUID, in *ReleaseInput, principal *entity.Principal) (*entity.Release, error)
}

type updateReleaseUsecaseImpl struct {
	store     *repository.Store
	validator vcs.Validator
}

func NewUpdateReleaseUsecase(i *do.Injector) (UpdateReleaseUsecase, error) {
	return &updateReleaseUsecaseImpl{
		store:     do.MustInvoke[*repository.Store](i),
		validator: do.MustInvoke[vcs.Validator](i),
	}, nil
}

// Execute implements UpdateReleaseUsecase. Approval freezes edits for
// everyone but devops. Items are matched in place by (repo, service);
// Targets and TalendItems are replaced wholesale.
func (u *updateReleaseUsecaseImpl) Execute(ctx context.Context, id uuid.UUID, in *ReleaseInput, principal *entity.Principal) (*entity.Release, error) {
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rel.AnyApproved() && !principal.HasRole(entity.RoleDevOps) {
		return nil, entity.ErrReleaseApproved
	}
	if err := validateBranches(ctx, u.validator, in.Items); err != nil {
		return nil, err
	}

	err = u.store.Atomic(ctx, func(tx *repository.Store) error {
		rel.Name = in.Name
		rel.UpdatedBy = principal.Email
		rel.StartWindow = in.StartWindow
		rel.EndWindow = in.EndWindow
		if err := tx.Releases.Update(ctx, rel); err != nil {
			return err
		}

		for _, item := range in.Items {
			stored := rel.FindItem(item.Repo, item.Service)
			if stored == nil {
				return entity.NewError(entity.ReasonNotFound,
					fmt.Sprintf("release item %s/%s not found", item.Repo, item.Service))
			}
			stored.ReleaseBranch = item.ReleaseBranch
			stored.HotfixBranch = item.HotfixBranch
			stored.FeatureNumber = item.FeatureNumber
			stored.Tag = item.Tag
			stored.SpecialNotes = item.SpecialNotes
			if itemFieldPolicy.writable("devops_notes", principal) {
				stored.DevopsNotes = item.DevopsNotes
			}
			if err := tx.Releases.UpdateItem(ctx, stored); err != nil {
				return err
			}
		}

		if err := tx.Releases.DeleteTalendItemsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		for _, item := range in.TalendItems {
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

		if err := tx.Releases.DeleteTargetsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		for _, target := range in.Targets {
			if err := tx.Releases.CreateTarget(ctx, rel.ID, target); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.store.Releases.GetByUUID(ctx, id)
}
