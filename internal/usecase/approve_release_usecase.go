package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

type ApproveReleaseUsecase interface {
	// Execute approves the release on behalf of every approval group the
	// principal holds. Groups without an approver row, and rows already
	// approved, are skipped; a call matching nothing still succeeds.
	Execute(ctx context.Context, u uuid.UUID, principal *entity.Principal) ([]*entity.Approver, error)
}

type approveReleaseUsecaseImpl struct {
	store *repository.Store
	now   func() time.Time
}

func NewApproveReleaseUsecase(i *do.Injector) (ApproveReleaseUsecase, error) {
	return &approveReleaseUsecaseImpl{
		store: do.MustInvoke[*repository.Store](i),
		now:   time.Now,
	}, nil
}

// Execute implements ApproveReleaseUsecase.
func (u *approveReleaseUsecaseImpl) Execute(ctx context.Context, id uuid.UUID, principal *entity.Principal) ([]*entity.Approver, error) {
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = u.store.Atomic(ctx, func(tx *repository.Store) error {
		for _, group := range principal.ApprovalGroups() {
			approver := rel.FindApprover(group)
			if approver == nil || approver.Approved {
				continue
			}
			now := u.now()
			approver.Approved = true
			approver.ApprovedBy = principal.Email
			approver.ApprovedAt = &now
			if err := tx.Releases.UpdateApprover(ctx, approver); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated.Approvers, nil
}
