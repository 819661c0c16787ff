package vcs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
)

func TestBranchExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/repos/org/api/branches/release/1.2":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	v := NewHostAPIValidator(srv.URL, "token-1", srv.Client())

	found, err := v.BranchExists(context.Background(), "org/api", "release/1.2")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = v.BranchExists(context.Background(), "org/api", "release/9.9")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBranchExistsHostErrorIsExternalUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := NewHostAPIValidator(srv.URL, "", srv.Client())
	_, err := v.BranchExists(context.Background(), "org/api", "main")
	require.ErrorIs(t, err, entity.ErrExternalUnavailable)
}

func TestListBranchesFollowsLinkHeader(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/repos/org/api/branches", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/org/api/branches?page=2>; rel="next", <%s/repos/org/api/branches?page=2>; rel="last"`, srv.URL, srv.URL))
			fmt.Fprint(w, `[{"name":"main"},{"name":"release/1.1"}]`)
		case "2":
			fmt.Fprint(w, `[{"name":"release/1.2"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	v := NewHostAPIValidator(srv.URL, "", srv.Client())
	branches, err := v.ListBranches(context.Background(), "org/api")
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "release/1.1", "release/1.2"}, branches)
}

func TestListTagsEmptyRepo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	v := NewHostAPIValidator(srv.URL, "", srv.Client())
	tags, err := v.ListTags(context.Background(), "org/api")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestNextLink(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{``, ""},
		{`<https://host/x?page=2>; rel="next"`, "https://host/x?page=2"},
		{`<https://host/x?page=9>; rel="last"`, ""},
		{`<https://host/x?page=2>; rel="next", <https://host/x?page=9>; rel="last"`, "https://host/x?page=2"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, nextLink(c.header), "header %q", c.header)
	}
}
