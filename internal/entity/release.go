package entity

import (
	"time"

	"github.com/google/uuid"
)

type DeploymentStatus string

const (
	DeploymentStatusUnknown        DeploymentStatus = "unknown"
	DeploymentStatusSuccess        DeploymentStatus = "success"
	DeploymentStatusPartialSuccess DeploymentStatus = "partial_success"
	DeploymentStatusFail           DeploymentStatus = "fail"
)

// JobStatusStarted is set when a job has been handed to the job host and a
// queue id recorded. Every later value is the host's own status string.
const JobStatusStarted = "Started"

// Release is a named bundle of deployable items moving through approval.
type Release struct {
	ID                ID
	UUID              uuid.UUID
	Name              string
	CreatedBy         string
	UpdatedBy         string
	StartWindow       *time.Time
	EndWindow         *time.Time
	DeploymentStatus  DeploymentStatus
	DeploymentComment string
	DeployedBy        string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items       []*ReleaseItem
	TalendItems []*TalendReleaseItem
	Approvers   []*Approver
	Targets     []*Target
}

// FullyApproved reports whether every approver row has signed off.
func (r *Release) FullyApproved() bool {
	for _, a := range r.Approvers {
		if !a.Approved {
			return false
		}
	}
	return true
}

// AnyApproved reports whether at least one approver row has signed off,
// which freezes edits for callers without the devops role.
func (r *Release) AnyApproved() bool {
	for _, a := range r.Approvers {
		if a.Approved {
			return true
		}
	}
	return false
}

// FindItem locates an item by its (repo, service) natural key.
func (r *Release) FindItem(repo, service string) *ReleaseItem {
	for _, it := range r.Items {
		if it.Repo == repo && it.Service == service {
			return it
		}
	}
	return nil
}

// FindApprover locates the approver row for a group, if any.
func (r *Release) FindApprover(group RoleGroup) *Approver {
	for _, a := range r.Approvers {
		if a.Group == group {
			return a
		}
	}
	return nil
}

// ReleaseItem is one deployable unit of a release, keyed by (repo, service)
// within its release.
type ReleaseItem struct {
	ID            ID
	ReleaseID     ID
	Repo          string
	Service       string
	ReleaseBranch string
	HotfixBranch  string
	FeatureNumber string
	Tag           string
	SpecialNotes  string
	DevopsNotes   string

	// Deployment-only fields, written by deploy and the dispatcher.
	Platform    string
	AzureEnv    string
	AzureTenant string
	QueueID     string
	JobStatus   string
	JobLogs     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TalendReleaseItem follows a separate packaging path and carries no
// job-status tracking.
type TalendReleaseItem struct {
	ID              ID
	ReleaseID       ID
	JobName         string
	PackageLocation string
	FeatureNumber   string
	SpecialNotes    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Approver is one group's sign-off on a release.
type Approver struct {
	ID         ID
	ReleaseID  ID
	Group      RoleGroup
	Approved   bool
	ApprovedBy string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Target is an environment label attached to a release. Pure tag.
type Target struct {
	ID        ID
	ReleaseID ID
	Target    string
}

// RevokeApproval is an append-only audit record of a revoked sign-off.
type RevokeApproval struct {
	ID        ID
	ReleaseID ID
	Email     string
	Reason    string
	CreatedAt time.Time
}
