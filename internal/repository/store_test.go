package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := NewSQLiteDB("")
	require.NoError(t, err)
	return NewStore(db)
}

func TestAtomicRollsBackEveryWrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx *Store) error {
		rel, err := tx.Releases.Create(ctx, &entity.Release{
			UUID:      uuid.New(),
			Name:      "doomed",
			CreatedBy: "admin@example.com",
		})
		if err != nil {
			return err
		}
		if _, err := tx.Releases.CreateItem(ctx, &entity.ReleaseItem{
			ReleaseID: rel.ID,
			Repo:      "org/api",
			Service:   "api",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rels, err := store.Releases.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rels, "nothing survives a rolled-back transaction")
}

func TestAtomicCommitsOnSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := uuid.New()
	err := store.Atomic(ctx, func(tx *Store) error {
		rel, err := tx.Releases.Create(ctx, &entity.Release{UUID: u, Name: "kept", CreatedBy: "admin@example.com"})
		if err != nil {
			return err
		}
		_, err = tx.Releases.CreateApprover(ctx, &entity.Approver{ReleaseID: rel.ID, Group: entity.RoleDevOps})
		return err
	})
	require.NoError(t, err)

	rel, err := store.Releases.GetByUUID(ctx, u)
	require.NoError(t, err)
	require.Len(t, rel.Approvers, 1)
}

func TestDeleteRefusesReleaseWithChildren(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rel, err := store.Releases.Create(ctx, &entity.Release{UUID: uuid.New(), Name: "guarded", CreatedBy: "a@example.com"})
	require.NoError(t, err)
	_, err = store.Releases.CreateItem(ctx, &entity.ReleaseItem{ReleaseID: rel.ID, Repo: "org/api", Service: "api"})
	require.NoError(t, err)

	err = store.Releases.Delete(ctx, rel.ID)
	require.ErrorIs(t, err, entity.ErrValidationFailed)

	require.NoError(t, store.Releases.DeleteItemsByRelease(ctx, rel.ID))
	require.NoError(t, store.Releases.Delete(ctx, rel.ID))

	_, err = store.Releases.GetByUUID(ctx, rel.UUID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMarkDeployedIsCompareAndSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rel, err := store.Releases.Create(ctx, &entity.Release{UUID: uuid.New(), Name: "once", CreatedBy: "a@example.com"})
	require.NoError(t, err)

	// Two callers holding the same undeployed snapshot.
	first := *rel
	first.DeployedBy = "ops1@example.com"
	first.DeploymentStatus = entity.DeploymentStatusPartialSuccess
	second := *rel
	second.DeployedBy = "ops2@example.com"
	second.DeploymentStatus = entity.DeploymentStatusPartialSuccess

	require.NoError(t, store.Releases.MarkDeployed(ctx, &first))
	err = store.Releases.MarkDeployed(ctx, &second)
	require.ErrorIs(t, err, entity.ErrDeploymentAlreadyStarted)

	stored, err := store.Releases.GetByUUID(ctx, rel.UUID)
	require.NoError(t, err)
	assert.Equal(t, "ops1@example.com", stored.DeployedBy)
}

func TestGetByUUIDUnknownIsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Releases.GetByUUID(context.Background(), uuid.New())
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDuplicateItemNaturalKeyIsRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rel, err := store.Releases.Create(ctx, &entity.Release{UUID: uuid.New(), Name: "dup", CreatedBy: "a@example.com"})
	require.NoError(t, err)

	_, err = store.Releases.CreateItem(ctx, &entity.ReleaseItem{ReleaseID: rel.ID, Repo: "org/api", Service: "api"})
	require.NoError(t, err)
	_, err = store.Releases.CreateItem(ctx, &entity.ReleaseItem{ReleaseID: rel.ID, Repo: "org/api", Service: "api"})
	require.Error(t, err, "repo/service is unique within a release")
}

func TestConstantUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Constants.Upsert(ctx, &entity.Constant{
		Service: "api", Repo: "org/api", Name: "API",
	}))
	require.NoError(t, store.Constants.Upsert(ctx, &entity.Constant{
		Service: "api", Repo: "org/api-v2", Name: "API",
	}))

	all, err := store.Constants.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "second upsert updates in place")
	assert.Equal(t, "org/api-v2", all[0].Repo)
}
