package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

type DeleteReleaseUsecase interface {
	// Execute tears a release down: children first, then the release row,
	// all in one transaction. The store refuses to drop a parent that still
	// has children, so ordering matters.
	Execute(ctx context.Context, u uuid.UUID, principal *entity.Principal) error
}

type deleteReleaseUsecaseImpl struct {
	store *repository.Store
}

func NewDeleteReleaseUsecase(i *do.Injector) (DeleteReleaseUsecase, error) {
	return &deleteReleaseUsecaseImpl{
		store: do.MustInvoke[*repository.Store](i),
	}, nil
}

// Execute implements DeleteReleaseUsecase.
func (u *deleteReleaseUsecaseImpl) Execute(ctx context.Context, id uuid.UUID, principal *entity.Principal) error {
	if !principal.HasRole(entity.RoleAdmin) {
		return entity.ErrUnauthorized
	}
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return err
	}

	return u.store.Atomic(ctx, func(tx *repository.Store) error {
		if err := tx.Releases.DeleteItemsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		if err := tx.Releases.DeleteTalendItemsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		if err := tx.Releases.DeleteApproversByRelease(ctx, rel.ID); err != nil {
			return err
		}
		if err := tx.Releases.DeleteTargetsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		if err := tx.Releases.DeleteRevokeApprovalsByRelease(ctx, rel.ID); err != nil {
			return err
		}
		return tx.Releases.Delete(ctx, rel.ID)
	})
}
