package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/dispatch"
	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

type JobStatusUsecase interface {
	// Execute polls the job host for every triggered item of the release
	// and returns the refreshed aggregate. Polling is pull-based: staleness
	// is bounded only by how often callers invoke this.
	Execute(ctx context.Context, u uuid.UUID) (*entity.Release, error)
}

type jobStatusUsecaseImpl struct {
	store      *repository.Store
	dispatcher dispatch.Dispatcher
}

func NewJobStatusUsecase(i *do.Injector) (JobStatusUsecase, error) {
	return &jobStatusUsecaseImpl{
		store:      do.MustInvoke[*repository.Store](i),
		dispatcher: do.MustInvoke[dispatch.Dispatcher](i),
	}, nil
}

// Execute implements JobStatusUsecase.
func (u *jobStatusUsecaseImpl) Execute(ctx context.Context, id uuid.UUID) (*entity.Release, error) {
	rel, err := u.store.Releases.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range rel.Items {
		if item.QueueID == "" {
			continue
		}
		if err := u.dispatcher.Poll(ctx, item); err != nil {
			return nil, err
		}
	}
	return u.store.Releases.GetByUUID(ctx, id)
}
