package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/dispatch"
	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/notify"
	"github.com/relgate/relgate/internal/repository"
)

type DeployReleaseUsecase interface {
	Execute(ctx context.Context, u uuid.UUID, in *DeployReleaseInput, principal *entity.Principal) (*entity.Release, error)
}

type deployReleaseUsecaseImpl struct {
	store      *repository.Store
	dispatcher dispatch.Dispatcher
	notifier   notify.Notifier
}

func NewDeployReleaseUsecase(i *do.Injector) (DeployReleaseUsecase, error) {
	return &deployReleaseUsecaseImpl{
		store:      do.MustInvoke[*repository.Store](i),
		dispatcher: do.MustInvoke[dispatch.Dispatcher](i),
		notifier:   do.MustInvoke[notify.Notifier](i),
	}, nil
}

// Execute implements DeployReleaseUsecase. The approval and at-most-once
// preconditions are evaluated inside the transaction, on the row as it is
// now, and the deployment marker itself is a guarded compare-and-set; a
// concurrent deploy loses at the marker even if both read an undeployed
// snapshot. Job triggering happens after commit, best effort per item, so
// one failed trigger never blocks the rest.
func (u *deployReleaseUsecaseImpl) Execute(ctx context.Context, id uuid.UUID, in *DeployReleaseInput, principal *entity.Principal) (*entity.Release, error) {
	if !principal.HasRole(entity.RoleDevOps) {
		return nil, entity.ErrUnauthorized
	}

	var rel *entity.Release
	err := u.store.Atomic(ctx, func(tx *repository.Store) error {
		var err error
		rel, err = tx.Releases.GetByUUID(ctx, id)
		if err != nil {
			return err
		}
		if !rel.FullyApproved() {
			return entity.ErrReleaseNotApproved
		}
		if rel.DeployedBy != "" {
			return entity.ErrDeploymentAlreadyStarted
		}
		rel.DeployedBy = principal.Email
		rel.UpdatedBy = principal.Email
		rel.DeploymentStatus = entity.DeploymentStatusPartialSuccess
		rel.DeploymentComment = in.Comment
		if err := tx.Releases.MarkDeployed(ctx, rel); err != nil {
			return err
		}
		for _, item := range in.Items {
			stored := rel.FindItem(item.Repo, item.Service)
			if stored == nil {
				return entity.NewError(entity.ReasonNotFound,
					fmt.Sprintf("release item %s/%s not found", item.Repo, item.Service))
			}
			stored.Platform = item.Platform
			stored.AzureEnv = item.AzureEnv
			stored.AzureTenant = item.AzureTenant
			if err := tx.Releases.UpdateItem(ctx, stored); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range in.Items {
		stored := rel.FindItem(item.Repo, item.Service)
		u.dispatcher.Trigger(ctx, stored)
	}

	if err := u.notifier.ReleaseDeployed(ctx, rel); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("release-deployed notification failed")
	}
	return u.store.Releases.GetByUUID(ctx, id)
}
