// Package export renders release data in its CSV and JSON wire shapes.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/relgate/relgate/internal/entity"
)

var csvHeader = []string{
	"release_uuid", "release_name", "deployment_status", "created_by",
	"updated_by", "deployed_by", "repo", "service", "release_branch",
	"tag", "platform", "job_status",
}

// WriteCSV flattens releases to one row per item. Releases without items
// still get a row carrying the release columns.
func WriteCSV(w io.Writer, releases []*entity.Release) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rel := range releases {
		base := []string{
			rel.UUID.String(), rel.Name, string(rel.DeploymentStatus),
			rel.CreatedBy, rel.UpdatedBy, rel.DeployedBy,
		}
		if len(rel.Items) == 0 {
			if err := cw.Write(append(base, "", "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for _, it := range rel.Items {
			row := append(append([]string{}, base...),
				it.Repo, it.Service, it.ReleaseBranch, it.Tag, it.Platform, it.JobStatus)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonItem struct {
	Repo          string `json:"repo"`
	Service       string `json:"service"`
	ReleaseBranch string `json:"release_branch,omitempty"`
	Tag           string `json:"tag,omitempty"`
	Platform      string `json:"platform,omitempty"`
	JobStatus     string `json:"job_status,omitempty"`
	JobLogs       string `json:"job_logs,omitempty"`
}

type jsonApprover struct {
	Group      string `json:"group"`
	Approved   bool   `json:"approved"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

type jsonRelease struct {
	UUID             string         `json:"uuid"`
	Name             string         `json:"name"`
	DeploymentStatus string         `json:"deployment_status"`
	CreatedBy        string         `json:"created_by"`
	UpdatedBy        string         `json:"updated_by"`
	DeployedBy       string         `json:"deployed_by,omitempty"`
	FullyApproved    bool           `json:"fully_approved"`
	Items            []jsonItem     `json:"items"`
	Approvers        []jsonApprover `json:"approvers"`
}

// WriteJSON renders the release list as a JSON document.
func WriteJSON(w io.Writer, releases []*entity.Release) error {
	out := make([]jsonRelease, 0, len(releases))
	for _, rel := range releases {
		jr := jsonRelease{
			UUID:             rel.UUID.String(),
			Name:             rel.Name,
			DeploymentStatus: string(rel.DeploymentStatus),
			CreatedBy:        rel.CreatedBy,
			UpdatedBy:        rel.UpdatedBy,
			DeployedBy:       rel.DeployedBy,
			FullyApproved:    rel.FullyApproved(),
			Items:            []jsonItem{},
			Approvers:        []jsonApprover{},
		}
		for _, it := range rel.Items {
			jr.Items = append(jr.Items, jsonItem{
				Repo:          it.Repo,
				Service:       it.Service,
				ReleaseBranch: it.ReleaseBranch,
				Tag:           it.Tag,
				Platform:      it.Platform,
				JobStatus:     it.JobStatus,
				JobLogs:       it.JobLogs,
			})
		}
		for _, a := range rel.Approvers {
			jr.Approvers = append(jr.Approvers, jsonApprover{
				Group:      string(a.Group),
				Approved:   a.Approved,
				ApprovedBy: a.ApprovedBy,
			})
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
