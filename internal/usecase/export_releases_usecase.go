package usecase

import (
	"context"
	"io"

	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/export"
	"github.com/relgate/relgate/internal/repository"
)

type ExportReleasesUsecase interface {
	// Execute writes the release list to w in the requested format
	// ("csv" or "json").
	Execute(ctx context.Context, format string, w io.Writer) error
}

type exportReleasesUsecaseImpl struct {
	store *repository.Store
}

func NewExportReleasesUsecase(i *do.Injector) (ExportReleasesUsecase, error) {
	return &exportReleasesUsecaseImpl{
		store: do.MustInvoke[*repository.Store](i),
	}, nil
}

// Execute implements ExportReleasesUsecase.
func (u *exportReleasesUsecaseImpl) Execute(ctx context.Context, format string, w io.Writer) error {
	releases, err := u.store.Releases.List(ctx)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return export.WriteCSV(w, releases)
	case "json":
		return export.WriteJSON(w, releases)
	default:
		return entity.NewError(entity.ReasonValidationFailed, "unsupported export format: "+format)
	}
}
