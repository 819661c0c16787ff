package usecase

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/vcs"
)

// validateBranches confirms every non-empty release branch exists on its
// repo. All missing repos are collected into a single branch_not_found
// failure rather than stopping at the first. A VCS host outage surfaces as
// external_service_unavailable since validation gates writes.
func validateBranches(ctx context.Context, validator vcs.Validator, items []ReleaseItemInput) error {
	var missing []string
	for _, item := range items {
		if item.ReleaseBranch == "" {
			continue
		}
		exists, err := validator.BranchExists(ctx, item.Repo, item.ReleaseBranch)
		if err != nil {
			return err
		}
		if !exists {
			missing = append(missing, item.Repo)
		}
	}
	if len(missing) > 0 {
		return entity.NewError(entity.ReasonBranchNotFound, strings.Join(lo.Uniq(missing), ", "))
	}
	return nil
}
