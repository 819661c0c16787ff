package cihost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/relgate/relgate/internal/entity"
)

// Build is one scheduled run of a job, correlated back to its trigger
// request through QueueID.
type Build struct {
	Number  int   `json:"number"`
	QueueID int64 `json:"queueId"`
}

// Stage is one step of a build's workflow.
type Stage struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BuildDescription is the workflow state of a specific build.
type BuildDescription struct {
	Status string  `json:"status"`
	Stages []Stage `json:"stages"`
}

// Client talks to the job host.
type Client interface {
	// StartJob enqueues a run and returns the queue id parsed from the
	// host's redirect location.
	StartJob(ctx context.Context, tmpl JobTemplate, params url.Values) (string, error)
	ListBuilds(ctx context.Context, tmpl JobTemplate) ([]Build, error)
	DescribeBuild(ctx context.Context, tmpl JobTemplate, number int) (*BuildDescription, error)
}

// queuePattern matches the queue id out of the host's Location header,
// e.g. https://ci.example.com/queue/1234/.
var queuePattern = regexp.MustCompile(`/queue/(\d+)/?$`)

type httpClientImpl struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient builds a job host client with a static bearer credential over
// an explicitly constructed HTTP client.
func NewClient(baseURL, token string, client *http.Client) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// StartJob implements Client.
func (c *httpClientImpl) StartJob(ctx context.Context, tmpl JobTemplate, params url.Values) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/buildWithParameters?%s", c.baseURL, tmpl.Path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)
	res, err := c.client.Do(req)
	if err != nil {
		return "", entity.WrapError(entity.ReasonExternalUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", entity.NewError(entity.ReasonExternalUnavailable,
			fmt.Sprintf("job host returned %d starting %s", res.StatusCode, tmpl.Path))
	}
	location := res.Header.Get("Location")
	m := queuePattern.FindStringSubmatch(location)
	if m == nil {
		return "", entity.NewError(entity.ReasonExternalUnavailable,
			fmt.Sprintf("no queue id in location %q", location))
	}
	return m[1], nil
}

// ListBuilds implements Client.
func (c *httpClientImpl) ListBuilds(ctx context.Context, tmpl JobTemplate) ([]Build, error) {
	endpoint := fmt.Sprintf("%s/%s/api/json?tree=builds[number,queueId]", c.baseURL, tmpl.Path)
	var payload struct {
		Builds []Build `json:"builds"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Builds, nil
}

// DescribeBuild implements Client.
func (c *httpClientImpl) DescribeBuild(ctx context.Context, tmpl JobTemplate, number int) (*BuildDescription, error) {
	endpoint := fmt.Sprintf("%s/%s/%d/wfapi/describe", c.baseURL, tmpl.Path, number)
	var desc BuildDescription
	if err := c.getJSON(ctx, endpoint, &desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

func (c *httpClientImpl) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	res, err := c.client.Do(req)
	if err != nil {
		return entity.WrapError(entity.ReasonExternalUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return entity.NewError(entity.ReasonExternalUnavailable,
			fmt.Sprintf("job host returned %d for %s", res.StatusCode, endpoint))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return entity.WrapError(entity.ReasonExternalUnavailable, err)
	}
	return nil
}

func (c *httpClientImpl) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
