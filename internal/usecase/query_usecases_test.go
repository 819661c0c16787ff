package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
)

func TestDeleteRelease_RequiresAdmin(t *testing.T) {
	store := newTestStore(t)
	rel := seedRelease(t, store, defaultValidator())

	uc := &deleteReleaseUsecaseImpl{store: store}
	err := uc.Execute(context.Background(), rel.UUID, releaseAdmin("admin@example.com"))

	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestDeleteRelease_TearsDownChildrenFirst(t *testing.T) {
	store := newTestStore(t)
	rel := seedRelease(t, store, defaultValidator(), "platform-team")
	admin := groupMember("root@example.com", entity.RoleAdmin)

	uc := &deleteReleaseUsecaseImpl{store: store}
	require.NoError(t, uc.Execute(context.Background(), rel.UUID, admin))

	_, err := store.Releases.GetByUUID(context.Background(), rel.UUID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDeleteRelease_UnknownUUID(t *testing.T) {
	store := newTestStore(t)

	uc := &deleteReleaseUsecaseImpl{store: store}
	err := uc.Execute(context.Background(), uuid.New(), groupMember("root@example.com", entity.RoleAdmin))

	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestListReleases_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	first := seedRelease(t, store, defaultValidator())

	// A later update should float the release handled last to the top.
	time.Sleep(10 * time.Millisecond)
	first.UpdatedBy = "ops@example.com"
	require.NoError(t, store.Releases.Update(context.Background(), first))

	uc := &listReleasesUsecaseImpl{store: store}
	rels, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, rels, 1)
	assert.Equal(t, first.UUID, rels[0].UUID)
	require.Len(t, rels[0].Approvers, 2, "listing preloads approvers")
}

func TestExportReleases_FormatSwitch(t *testing.T) {
	store := newTestStore(t)
	seedRelease(t, store, defaultValidator())
	uc := &exportReleasesUsecaseImpl{store: store}

	var csvBuf bytes.Buffer
	require.NoError(t, uc.Execute(context.Background(), "csv", &csvBuf))
	assert.True(t, strings.HasPrefix(csvBuf.String(), "release_uuid,"))

	var jsonBuf bytes.Buffer
	require.NoError(t, uc.Execute(context.Background(), "json", &jsonBuf))
	var out []map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &out))
	require.Len(t, out, 1)

	var none bytes.Buffer
	err := uc.Execute(context.Background(), "xml", &none)
	require.ErrorIs(t, err, entity.ErrValidationFailed)
	assert.Zero(t, none.Len())
}

func TestJobStatus_PollsOnlyTriggeredItems(t *testing.T) {
	store := newTestStore(t)
	rel := seedRelease(t, store, defaultValidator())

	api := rel.FindItem("org/api", "api")
	require.NotNil(t, api)
	api.QueueID = "4711"
	api.JobStatus = entity.JobStatusStarted
	require.NoError(t, store.Releases.UpdateItem(context.Background(), api))

	dispatcher := &fakeDispatcher{}
	uc := &jobStatusUsecaseImpl{store: store, dispatcher: dispatcher}
	refreshed, err := uc.Execute(context.Background(), rel.UUID)
	require.NoError(t, err)

	assert.Equal(t, []string{"api"}, dispatcher.polled, "items without a queue id are skipped")
	assert.NotNil(t, refreshed.FindItem("org/web", "web"))
}

func TestGetRelease_EnrichesConstantsForItsServices(t *testing.T) {
	store := newTestStore(t)
	validator := defaultValidator()
	validator.tags = map[string][]string{"org/api": {"v1.0.0", "v1.1.0"}}
	rel := seedRelease(t, store, validator)

	ctx := context.Background()
	require.NoError(t, store.Constants.Upsert(ctx, &entity.Constant{Service: "api", Repo: "org/api", Name: "API"}))
	require.NoError(t, store.Constants.Upsert(ctx, &entity.Constant{Service: "batch", Repo: "org/batch", Name: "Batch"}))

	uc := &getReleaseUsecaseImpl{store: store, validator: validator}
	detail, err := uc.Execute(ctx, rel.UUID)
	require.NoError(t, err)

	assert.Equal(t, rel.UUID, detail.Release.UUID)
	require.Len(t, detail.Constants, 1, "constants limited to the release's services")
	assert.Equal(t, "api", detail.Constants[0].Service)
	assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, detail.Constants[0].Tags)
	assert.Equal(t, []string{"main", "release/1.2"}, detail.Constants[0].Branches)
}

func TestListConstants_HostOutageDegradesToEmptyRefs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Constants.Upsert(ctx, &entity.Constant{Service: "api", Repo: "org/api", Name: "API"}))

	uc := &listConstantsUsecaseImpl{
		store:     store,
		validator: &fakeValidator{err: entity.ErrExternalUnavailable},
	}
	infos, err := uc.Execute(ctx, nil)
	require.NoError(t, err, "a flaky host never breaks the constant listing")

	require.Len(t, infos, 1)
	assert.Empty(t, infos[0].Tags)
	assert.Empty(t, infos[0].Branches)
}
