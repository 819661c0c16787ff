package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/relgate/relgate/internal/entity"
)

// HostAPIValidator speaks the VCS host's REST API. Repo identifiers are
// "org/name" slugs. Ref listings paginate via the Link response header.
type HostAPIValidator struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHostAPIValidator builds a validator over an explicitly constructed
// client; callers own the client's lifecycle.
func NewHostAPIValidator(baseURL, token string, client *http.Client) *HostAPIValidator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HostAPIValidator{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// BranchExists implements Validator via a direct single-ref lookup.
func (v *HostAPIValidator) BranchExists(ctx context.Context, repo, branch string) (bool, error) {
	url := fmt.Sprintf("%s/repos/%s/branches/%s", v.baseURL, repo, branch)
	res, err := v.do(ctx, url)
	if err != nil {
		return false, entity.WrapError(entity.ReasonExternalUnavailable, err)
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, entity.NewError(entity.ReasonExternalUnavailable,
			fmt.Sprintf("vcs host returned %d for %s", res.StatusCode, url))
	}
}

// ListBranches implements Validator.
func (v *HostAPIValidator) ListBranches(ctx context.Context, repo string) ([]string, error) {
	return v.listRefs(ctx, fmt.Sprintf("%s/repos/%s/branches?per_page=100", v.baseURL, repo))
}

// ListTags implements Validator.
func (v *HostAPIValidator) ListTags(ctx context.Context, repo string) ([]string, error) {
	return v.listRefs(ctx, fmt.Sprintf("%s/repos/%s/tags?per_page=100", v.baseURL, repo))
}

func (v *HostAPIValidator) listRefs(ctx context.Context, url string) ([]string, error) {
	var names []string
	for url != "" {
		res, err := v.do(ctx, url)
		if err != nil {
			return nil, entity.WrapError(entity.ReasonExternalUnavailable, err)
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, entity.NewError(entity.ReasonExternalUnavailable,
				fmt.Sprintf("vcs host returned %d for %s", res.StatusCode, url))
		}
		var page []struct {
			Name string `json:"name"`
		}
		err = json.NewDecoder(res.Body).Decode(&page)
		res.Body.Close()
		if err != nil {
			return nil, entity.WrapError(entity.ReasonExternalUnavailable, err)
		}
		for _, ref := range page {
			names = append(names, ref.Name)
		}
		url = nextLink(res.Header.Get("Link"))
	}
	return names, nil
}

func (v *HostAPIValidator) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if v.token != "" {
		req.Header.Set("Authorization", "Bearer "+v.token)
	}
	req.Header.Set("Accept", "application/json")
	return v.client.Do(req)
}

// nextLink extracts the rel="next" target from a Link header, if present.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		if len(fields) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(fields[0]), "<>")
		for _, param := range fields[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}
