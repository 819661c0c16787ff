package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

type RevokeApprovalUsecase interface {
	// Execute records an audit row with the caller's reason and resets the
	// release-management sign-off. Other groups keep their approvals.
	Execute(ctx context.Context, u uuid.UUID, reason string, principal *entity.Principal) error
}

type revokeApprovalUsecaseImpl struct {
	store *repository.Store
}

func NewRevokeApprovalUsecase(i *do.Injector) (RevokeApprovalUsecase, error) {
	return &revokeApprovalUsecaseImpl{
		store: do.MustInvoke[*repository.Store](i),
	}, nil
}

// Execute implements RevokeApprovalUsecase.
func (u *revokeApprovalUsecaseImpl) Execute(ctx context.Context, id uuid.UUID, reason string, principal *entity.Principal) error {
	if reason == "" {
		return entity.NewError(entity.ReasonValidationFailed, "revoke reason is required")
	}
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	approver := rel.FindApprover(entity.GroupReleaseManagement)
	if approver == nil {
		return entity.NewError(entity.ReasonNotFound, "release has no release-management approver")
	}

	return u.store.Atomic(ctx, func(tx *repository.Store) error {
		if err := tx.Releases.CreateRevokeApproval(ctx, &entity.RevokeApproval{
			ReleaseID: rel.ID,
			Email:     principal.Email,
			Reason:    reason,
		}); err != nil {
			return err
		}
		approver.Approved = false
		approver.ApprovedBy = ""
		approver.ApprovedAt = nil
		return tx.Releases.UpdateApprover(ctx, approver)
	})
}
