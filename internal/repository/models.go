package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"gorm.io/gorm"
)

type Account struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex"`
	FirstName string
	LastName  string
	TeamName  string
	Roles     []Role
	Tokens    []AuthToken
}

func (a *Account) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        entity.NewID(a.ID),
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		TeamName:  a.TeamName,
		Roles: lo.Map(a.Roles, func(r Role, _ int) entity.RoleGroup {
			return entity.RoleGroup(r.Role)
		}),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type Role struct {
	gorm.Model
	AccountID uint   `gorm:"index"`
	Role      string `gorm:"index"`
}

type AuthToken struct {
	gorm.Model
	AccountID uint   `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	Active    bool
}

func (t *AuthToken) ToEntity() *entity.AuthToken {
	return &entity.AuthToken{
		ID:        entity.NewID(t.ID),
		AccountID: entity.NewID(t.AccountID),
		Token:     t.Token,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}

type Release struct {
	gorm.Model
	UUID              string `gorm:"uniqueIndex"`
	Name              string
	CreatedBy         string
	UpdatedBy         string
	StartWindow       *time.Time
	EndWindow         *time.Time
	DeploymentStatus  string
	DeploymentComment string
	DeployedBy        string

	Items       []ReleaseItem
	TalendItems []TalendReleaseItem
	Approvers   []Approver
	Targets     []Target
}

func (r *Release) ToEntity() *entity.Release {
	return &entity.Release{
		ID:                entity.NewID(r.ID),
		UUID:              uuid.MustParse(r.UUID),
		Name:              r.Name,
		CreatedBy:         r.CreatedBy,
		UpdatedBy:         r.UpdatedBy,
		StartWindow:       r.StartWindow,
		EndWindow:         r.EndWindow,
		DeploymentStatus:  entity.DeploymentStatus(r.DeploymentStatus),
		DeploymentComment: r.DeploymentComment,
		DeployedBy:        r.DeployedBy,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		Items: lo.Map(r.Items, func(m ReleaseItem, _ int) *entity.ReleaseItem {
			return m.ToEntity()
		}),
		TalendItems: lo.Map(r.TalendItems, func(m TalendReleaseItem, _ int) *entity.TalendReleaseItem {
			return m.ToEntity()
		}),
		Approvers: lo.Map(r.Approvers, func(m Approver, _ int) *entity.Approver {
			return m.ToEntity()
		}),
		Targets: lo.Map(r.Targets, func(m Target, _ int) *entity.Target {
			return m.ToEntity()
		}),
	}
}

func (r *Release) FromEntity(e *entity.Release) {
	if !e.ID.IsZero() {
		r.ID = e.ID.Uint()
	}
	r.UUID = e.UUID.String()
	r.Name = e.Name
	r.CreatedBy = e.CreatedBy
	r.UpdatedBy = e.UpdatedBy
	r.StartWindow = e.StartWindow
	r.EndWindow = e.EndWindow
	r.DeploymentStatus = string(e.DeploymentStatus)
	r.DeploymentComment = e.DeploymentComment
	r.DeployedBy = e.DeployedBy
}

type ReleaseItem struct {
	gorm.Model
	ReleaseID     uint   `gorm:"index:idx_release_repo_service,unique"`
	Repo          string `gorm:"index:idx_release_repo_service,unique"`
	Service       string `gorm:"index:idx_release_repo_service,unique"`
	ReleaseBranch string
	HotfixBranch  string
	FeatureNumber string
	Tag           string
	SpecialNotes  string
	DevopsNotes   string
	Platform      string
	AzureEnv      string
	AzureTenant   string
	QueueID       string
	JobStatus     string
	JobLogs       string
}

func (m *ReleaseItem) ToEntity() *entity.ReleaseItem {
	return &entity.ReleaseItem{
		ID:            entity.NewID(m.ID),
		ReleaseID:     entity.NewID(m.ReleaseID),
		Repo:          m.Repo,
		Service:       m.Service,
		ReleaseBranch: m.ReleaseBranch,
		HotfixBranch:  m.HotfixBranch,
		FeatureNumber: m.FeatureNumber,
		Tag:           m.Tag,
		SpecialNotes:  m.SpecialNotes,
		DevopsNotes:   m.DevopsNotes,
		Platform:      m.Platform,
		AzureEnv:      m.AzureEnv,
		AzureTenant:   m.AzureTenant,
		QueueID:       m.QueueID,
		JobStatus:     m.JobStatus,
		JobLogs:       m.JobLogs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (m *ReleaseItem) FromEntity(e *entity.ReleaseItem) {
	if !e.ID.IsZero() {
		m.ID = e.ID.Uint()
	}
	if !e.ReleaseID.IsZero() {
		m.ReleaseID = e.ReleaseID.Uint()
	}
	m.Repo = e.Repo
	m.Service = e.Service
	m.ReleaseBranch = e.ReleaseBranch
	m.HotfixBranch = e.HotfixBranch
	m.FeatureNumber = e.FeatureNumber
	m.Tag = e.Tag
	m.SpecialNotes = e.SpecialNotes
	m.DevopsNotes = e.DevopsNotes
	m.Platform = e.Platform
	m.AzureEnv = e.AzureEnv
	m.AzureTenant = e.AzureTenant
	m.QueueID = e.QueueID
	m.JobStatus = e.JobStatus
	m.JobLogs = e.JobLogs
}

type TalendReleaseItem struct {
	gorm.Model
	ReleaseID       uint `gorm:"index"`
	JobName         string
	PackageLocation string
	FeatureNumber   string
	SpecialNotes    string
}

func (m *TalendReleaseItem) ToEntity() *entity.TalendReleaseItem {
	return &entity.TalendReleaseItem{
		ID:              entity.NewID(m.ID),
		ReleaseID:       entity.NewID(m.ReleaseID),
		JobName:         m.JobName,
		PackageLocation: m.PackageLocation,
		FeatureNumber:   m.FeatureNumber,
		SpecialNotes:    m.SpecialNotes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (m *TalendReleaseItem) FromEntity(e *entity.TalendReleaseItem) {
	if !e.ID.IsZero() {
		m.ID = e.ID.Uint()
	}
	if !e.ReleaseID.IsZero() {
		m.ReleaseID = e.ReleaseID.Uint()
	}
	m.JobName = e.JobName
	m.PackageLocation = e.PackageLocation
	m.FeatureNumber = e.FeatureNumber
	m.SpecialNotes = e.SpecialNotes
}

type Approver struct {
	gorm.Model
	ReleaseID  uint   `gorm:"index:idx_release_group,unique"`
	Group      string `gorm:"index:idx_release_group,unique"`
	Approved   bool
	ApprovedBy string
	ApprovedAt *time.Time
}

func (m *Approver) ToEntity() *entity.Approver {
	return &entity.Approver{
		ID:         entity.NewID(m.ID),
		ReleaseID:  entity.NewID(m.ReleaseID),
		Group:      entity.RoleGroup(m.Group),
		Approved:   m.Approved,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m *Approver) FromEntity(e *entity.Approver) {
	if !e.ID.IsZero() {
		m.ID = e.ID.Uint()
	}
	if !e.ReleaseID.IsZero() {
		m.ReleaseID = e.ReleaseID.Uint()
	}
	m.Group = string(e.Group)
	m.Approved = e.Approved
	m.ApprovedBy = e.ApprovedBy
	m.ApprovedAt = e.ApprovedAt
}

type Target struct {
	gorm.Model
	ReleaseID uint `gorm:"index"`
	Target    string
}

func (m *Target) ToEntity() *entity.Target {
	return &entity.Target{
		ID:        entity.NewID(m.ID),
		ReleaseID: entity.NewID(m.ReleaseID),
		Target:    m.Target,
	}
}

type RevokeApproval struct {
	gorm.Model
	ReleaseID uint `gorm:"index"`
	Email     string
	Reason    string
}

func (m *RevokeApproval) ToEntity() *entity.RevokeApproval {
	return &entity.RevokeApproval{
		ID:        entity.NewID(m.ID),
		ReleaseID: entity.NewID(m.ReleaseID),
		Email:     m.Email,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

type Constant struct {
	gorm.Model
	Repo    string
	Service string `gorm:"uniqueIndex"`
	Name    string
}

func (m *Constant) ToEntity() *entity.Constant {
	return &entity.Constant{
		ID:      entity.NewID(m.ID),
		Repo:    m.Repo,
		Service: m.Service,
		Name:    m.Name,
	}
}

func (m *Constant) FromEntity(e *entity.Constant) {
	if !e.ID.IsZero() {
		m.ID = e.ID.Uint()
	}
	m.Repo = e.Repo
	m.Service = e.Service
	m.Name = e.Name
}
