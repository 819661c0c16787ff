package cihost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
)

func TestStartJobParsesQueueID(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Location", "https://ci.example.com/queue/4711/")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", srv.Client())
	tmpl := TemplateFor("azure")
	queueID, err := c.StartJob(context.Background(), tmpl, url.Values{"SERVICE": {"api"}})
	require.NoError(t, err)

	assert.Equal(t, "4711", queueID)
	assert.Equal(t, "/job/deploy-azure/buildWithParameters", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestStartJobWithoutQueueLocationFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	_, err := c.StartJob(context.Background(), TemplateFor("onprem"), url.Values{})
	require.ErrorIs(t, err, entity.ErrExternalUnavailable)
}

func TestStartJobSurfacesHostErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	_, err := c.StartJob(context.Background(), TemplateFor(""), url.Values{})
	require.ErrorIs(t, err, entity.ErrExternalUnavailable)
}

func TestListBuilds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/deploy-onprem/api/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"builds":[{"number":12,"queueId":4711},{"number":11,"queueId":4700}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	builds, err := c.ListBuilds(context.Background(), TemplateFor("onprem"))
	require.NoError(t, err)

	require.Len(t, builds, 2)
	assert.Equal(t, Build{Number: 12, QueueID: 4711}, builds[0])
}

func TestDescribeBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/deploy-azure/12/wfapi/describe", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"FAILED","stages":[{"name":"Build","status":"SUCCESS"},{"name":"Deploy","status":"FAILED","error":"timeout"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	desc, err := c.DescribeBuild(context.Background(), TemplateFor("azure"), 12)
	require.NoError(t, err)

	assert.Equal(t, "FAILED", desc.Status)
	require.Len(t, desc.Stages, 2)
	assert.Equal(t, "timeout", desc.Stages[1].Error)
}

func TestTemplateForUnknownPlatformUsesDefaultJob(t *testing.T) {
	tmpl := TemplateFor("mainframe")
	assert.Equal(t, "job/deploy-default", tmpl.Path)

	params := tmpl.ParamsFor(&entity.ReleaseItem{Repo: "org/api", Service: "api", ReleaseBranch: "release/1.2"})
	assert.Equal(t, "org/api", params.Get("REPO"))
	assert.Equal(t, "release/1.2", params.Get("BRANCH"))
}
