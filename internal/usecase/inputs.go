package usecase

import "time"

// ReleaseItemInput is one deployable item in a create/update payload.
type ReleaseItemInput struct {
	Repo          string `json:"repo"`
	Service       string `json:"service"`
	ReleaseBranch string `json:"release_branch"`
	HotfixBranch  string `json:"hotfix_branch"`
	FeatureNumber string `json:"feature_number"`
	Tag           string `json:"tag"`
	SpecialNotes  string `json:"special_notes"`
	DevopsNotes   string `json:"devops_notes"`
}

// TalendItemInput is one Talend item in a create/update payload.
type TalendItemInput struct {
	JobName         string `json:"job_name"`
	PackageLocation string `json:"package_location"`
	FeatureNumber   string `json:"feature_number"`
	SpecialNotes    string `json:"special_notes"`
}

// ReleaseInput carries the mutable release fields and child collections.
type ReleaseInput struct {
	Name        string             `json:"name"`
	StartWindow *time.Time         `json:"start_window"`
	EndWindow   *time.Time         `json:"end_window"`
	Items       []ReleaseItemInput `json:"items"`
	TalendItems []TalendItemInput  `json:"talend_items"`
	Targets     []string           `json:"targets"`
}

// CreateReleaseInput is the full create payload.
type CreateReleaseInput struct {
	Release        ReleaseInput `json:"release"`
	ApproverGroups []string     `json:"approvers"`
}

// DeployItemInput selects an item by its natural key and supplies its
// deployment routing fields.
type DeployItemInput struct {
	Repo        string `json:"repo"`
	Service     string `json:"service"`
	Platform    string `json:"platform"`
	AzureEnv    string `json:"azure_env"`
	AzureTenant string `json:"azure_tenant"`
}

// DeployReleaseInput is the deploy payload.
type DeployReleaseInput struct {
	Items   []DeployItemInput `json:"items"`
	Comment string            `json:"comment"`
}
