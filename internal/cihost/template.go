// Package cihost is the client for the external deployment job host.
package cihost

import (
	"net/url"
	"strings"

	"github.com/relgate/relgate/internal/entity"
)

// JobTemplate addresses one job on the host. Each platform maps to its own
// job path and parameter shape.
type JobTemplate struct {
	Platform string
	Path     string
}

const (
	PlatformAzure  = "azure"
	PlatformOnPrem = "onprem"
)

// TemplateFor selects the job template for an item's platform. Anything
// other than azure or onprem runs through the default job.
func TemplateFor(platform string) JobTemplate {
	switch strings.ToLower(platform) {
	case PlatformAzure:
		return JobTemplate{Platform: PlatformAzure, Path: "job/deploy-azure"}
	case PlatformOnPrem:
		return JobTemplate{Platform: PlatformOnPrem, Path: "job/deploy-onprem"}
	default:
		return JobTemplate{Platform: "default", Path: "job/deploy-default"}
	}
}

// ParamsFor builds the start-job parameters for an item in the shape the
// template's job expects.
func (t JobTemplate) ParamsFor(item *entity.ReleaseItem) url.Values {
	params := url.Values{}
	params.Set("SERVICE", item.Service)
	switch t.Platform {
	case PlatformAzure:
		params.Set("BRANCH", item.ReleaseBranch)
		params.Set("AZURE_ENV", item.AzureEnv)
		params.Set("AZURE_TENANT", item.AzureTenant)
	case PlatformOnPrem:
		params.Set("BRANCH", item.ReleaseBranch)
		params.Set("TAG", item.Tag)
	default:
		params.Set("REPO", item.Repo)
		params.Set("BRANCH", item.ReleaseBranch)
	}
	return params
}
