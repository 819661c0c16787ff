package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := repository.NewSQLiteDB("")
	require.NoError(t, err)
	return repository.NewStore(db)
}

// fakeValidator answers from a fixed repo -> branches map.
type fakeValidator struct {
	branches map[string][]string
	tags     map[string][]string
	err      error
}

func (f *fakeValidator) BranchExists(ctx context.Context, repo, branch string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, b := range f.branches[repo] {
		if b == branch {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeValidator) ListBranches(ctx context.Context, repo string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.branches[repo], nil
}

func (f *fakeValidator) ListTags(ctx context.Context, repo string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tags[repo], nil
}

type fakeNotifier struct {
	created  int
	deployed int
}

func (f *fakeNotifier) ReleaseCreated(ctx context.Context, rel *entity.Release) error {
	f.created++
	return nil
}

func (f *fakeNotifier) ReleaseDeployed(ctx context.Context, rel *entity.Release) error {
	f.deployed++
	return nil
}

// fakeDispatcher records trigger/poll calls per service.
type fakeDispatcher struct {
	triggered []string
	polled    []string
}

func (f *fakeDispatcher) Trigger(ctx context.Context, item *entity.ReleaseItem) {
	f.triggered = append(f.triggered, item.Service)
}

func (f *fakeDispatcher) Poll(ctx context.Context, item *entity.ReleaseItem) error {
	f.polled = append(f.polled, item.Service)
	return nil
}

func releaseAdmin(email string) *entity.Principal {
	return &entity.Principal{Email: email, Roles: []entity.RoleGroup{entity.RoleReleaseAdmin}}
}

func devops(email string) *entity.Principal {
	return &entity.Principal{Email: email, Roles: []entity.RoleGroup{entity.RoleDevOps}}
}

func groupMember(email string, groups ...entity.RoleGroup) *entity.Principal {
	return &entity.Principal{Email: email, Roles: groups}
}

// seedRelease creates a release through the create usecase so every test
// starts from the same aggregate shape.
func seedRelease(t *testing.T, store *repository.Store, validator *fakeValidator, groups ...string) *entity.Release {
	t.Helper()
	uc := &createReleaseUsecaseImpl{
		store:     store,
		validator: validator,
		notifier:  &fakeNotifier{},
	}
	rel, err := uc.Execute(context.Background(), &CreateReleaseInput{
		Release: ReleaseInput{
			Name: "2024-06-cycle",
			Items: []ReleaseItemInput{
				{Repo: "org/api", Service: "api", ReleaseBranch: "release/1.2", SpecialNotes: "api notes"},
				{Repo: "org/web", Service: "web", ReleaseBranch: "release/1.2"},
			},
			TalendItems: []TalendItemInput{
				{JobName: "sync-orders", PackageLocation: "s3://jobs/sync-orders.zip"},
			},
			Targets: []string{"salesforce"},
		},
		ApproverGroups: groups,
	}, releaseAdmin("admin@example.com"))
	require.NoError(t, err)
	return rel
}

func defaultValidator() *fakeValidator {
	return &fakeValidator{branches: map[string][]string{
		"org/api": {"main", "release/1.2"},
		"org/web": {"main", "release/1.2"},
	}}
}

func approveAll(t *testing.T, store *repository.Store, rel *entity.Release) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	for _, a := range rel.Approvers {
		a.Approved = true
		a.ApprovedBy = "approver@example.com"
		a.ApprovedAt = &now
		require.NoError(t, store.Releases.UpdateApprover(ctx, a))
	}
}
