package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"gorm.io/gorm"
)

// ReleaseRepository persists the Release aggregate and its children.
// Child rows reference the release by id; delete-protection is enforced by
// Delete refusing to remove a release that still has children.
type ReleaseRepository interface {
	Create(ctx context.Context, rel *entity.Release) (*entity.Release, error)
	GetByUUID(ctx context.Context, u uuid.UUID) (*entity.Release, error)
	List(ctx context.Context) ([]*entity.Release, error)
	Update(ctx context.Context, rel *entity.Release) error
	// MarkDeployed writes the deployment marker iff it is still unset,
	// enforcing at-most-once initiation at the storage layer.
	MarkDeployed(ctx context.Context, rel *entity.Release) error
	Delete(ctx context.Context, id entity.ID) error

	CreateItem(ctx context.Context, item *entity.ReleaseItem) (*entity.ReleaseItem, error)
	UpdateItem(ctx context.Context, item *entity.ReleaseItem) error
	DeleteItemsByRelease(ctx context.Context, releaseID entity.ID) error

	CreateTalendItem(ctx context.Context, item *entity.TalendReleaseItem) (*entity.TalendReleaseItem, error)
	DeleteTalendItemsByRelease(ctx context.Context, releaseID entity.ID) error

	CreateApprover(ctx context.Context, a *entity.Approver) (*entity.Approver, error)
	UpdateApprover(ctx context.Context, a *entity.Approver) error
	DeleteApproversByRelease(ctx context.Context, releaseID entity.ID) error

	CreateTarget(ctx context.Context, releaseID entity.ID, target string) error
	DeleteTargetsByRelease(ctx context.Context, releaseID entity.ID) error

	CreateRevokeApproval(ctx context.Context, rev *entity.RevokeApproval) error
	ListRevokeApprovals(ctx context.Context, releaseID entity.ID) ([]*entity.RevokeApproval, error)
	DeleteRevokeApprovalsByRelease(ctx context.Context, releaseID entity.ID) error
}

type releaseRepositoryImpl struct {
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) ReleaseRepository {
	return &releaseRepositoryImpl{db: db}
}

// Create inserts the release row only; children are created separately so
// callers can compose them inside one transaction.
func (r *releaseRepositoryImpl) Create(ctx context.Context, rel *entity.Release) (*entity.Release, error) {
	var model Release
	model.FromEntity(rel)
	if err := gorm.G[Release](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *releaseRepositoryImpl) GetByUUID(ctx context.Context, u uuid.UUID) (*entity.Release, error) {
	var model Release
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("TalendItems").
		Preload("Approvers").
		Preload("Targets").
		Where("uuid = ?", u.String()).
		First(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *releaseRepositoryImpl) List(ctx context.Context) ([]*entity.Release, error) {
	var models []Release
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Approvers").
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(models, func(m Release, _ int) *entity.Release {
		return m.ToEntity()
	}), nil
}

// Update writes the mutable release fields. Column updates go through an
// explicit map so cleared fields and booleans are written too.
func (r *releaseRepositoryImpl) Update(ctx context.Context, rel *entity.Release) error {
	err := r.db.WithContext(ctx).Model(&Release{}).
		Where("id = ?", rel.ID.Uint()).
		Updates(map[string]any{
			"name":               rel.Name,
			"updated_by":         rel.UpdatedBy,
			"start_window":       rel.StartWindow,
			"end_window":         rel.EndWindow,
			"deployment_status":  string(rel.DeploymentStatus),
			"deployment_comment": rel.DeploymentComment,
			"deployed_by":        rel.DeployedBy,
		}).Error
	return translate(err)
}

// MarkDeployed implements ReleaseRepository. The deployed_by guard in the
// WHERE clause makes the marker a compare-and-set: a caller holding a stale
// snapshot loses on rows affected, not silently.
func (r *releaseRepositoryImpl) MarkDeployed(ctx context.Context, rel *entity.Release) error {
	res := r.db.WithContext(ctx).Model(&Release{}).
		Where("id = ? AND deployed_by = ''", rel.ID.Uint()).
		Updates(map[string]any{
			"updated_by":         rel.UpdatedBy,
			"deployment_status":  string(rel.DeploymentStatus),
			"deployment_comment": rel.DeploymentComment,
			"deployed_by":        rel.DeployedBy,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrDeploymentAlreadyStarted
	}
	return nil
}

// Delete removes the release row. It refuses to delete a release that still
// has children, mirroring the store's on-delete protection.
func (r *releaseRepositoryImpl) Delete(ctx context.Context, id entity.ID) error {
	for _, count := range []func() (int64, error){
		func() (int64, error) { return gorm.G[ReleaseItem](r.db).Where("release_id = ?", id.Uint()).Count(ctx, "id") },
		func() (int64, error) {
			return gorm.G[TalendReleaseItem](r.db).Where("release_id = ?", id.Uint()).Count(ctx, "id")
		},
		func() (int64, error) { return gorm.G[Approver](r.db).Where("release_id = ?", id.Uint()).Count(ctx, "id") },
		func() (int64, error) { return gorm.G[Target](r.db).Where("release_id = ?", id.Uint()).Count(ctx, "id") },
	} {
		n, err := count()
		if err != nil {
			return translate(err)
		}
		if n > 0 {
			return entity.NewError(entity.ReasonValidationFailed, "release still has children")
		}
	}
	_, err := gorm.G[Release](r.db).Where("id = ?", id.Uint()).Delete(ctx)
	return translate(err)
}

func (r *releaseRepositoryImpl) CreateItem(ctx context.Context, item *entity.ReleaseItem) (*entity.ReleaseItem, error) {
	var model ReleaseItem
	model.FromEntity(item)
	if err := gorm.G[ReleaseItem](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *releaseRepositoryImpl) UpdateItem(ctx context.Context, item *entity.ReleaseItem) error {
	err := r.db.WithContext(ctx).Model(&ReleaseItem{}).
		Where("id = ?", item.ID.Uint()).
		Updates(map[string]any{
			"release_branch": item.ReleaseBranch,
			"hotfix_branch":  item.HotfixBranch,
			"feature_number": item.FeatureNumber,
			"tag":            item.Tag,
			"special_notes":  item.SpecialNotes,
			"devops_notes":   item.DevopsNotes,
			"platform":       item.Platform,
			"azure_env":      item.AzureEnv,
			"azure_tenant":   item.AzureTenant,
			"queue_id":       item.QueueID,
			"job_status":     item.JobStatus,
			"job_logs":       item.JobLogs,
		}).Error
	return translate(err)
}

func (r *releaseRepositoryImpl) DeleteItemsByRelease(ctx context.Context, releaseID entity.ID) error {
	_, err := gorm.G[ReleaseItem](r.db).Where("release_id = ?", releaseID.Uint()).Delete(ctx)
	return translate(err)
}

func (r *releaseRepositoryImpl) CreateTalendItem(ctx context.Context, item *entity.TalendReleaseItem) (*entity.TalendReleaseItem, error) {
	var model TalendReleaseItem
	model.FromEntity(item)
	if err := gorm.G[TalendReleaseItem](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *releaseRepositoryImpl) DeleteTalendItemsByRelease(ctx context.Context, releaseID entity.ID) error {
	_, err := gorm.G[TalendReleaseItem](r.db).Where("release_id = ?", releaseID.Uint()).Delete(ctx)
	return translate(err)
}

func (r *releaseRepositoryImpl) CreateApprover(ctx context.Context, a *entity.Approver) (*entity.Approver, error) {
	var model Approver
	model.FromEntity(a)
	if err := gorm.G[Approver](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *releaseRepositoryImpl) UpdateApprover(ctx context.Context, a *entity.Approver) error {
	err := r.db.WithContext(ctx).Model(&Approver{}).
		Where("id = ?", a.ID.Uint()).
		Updates(map[string]any{
			"approved":    a.Approved,
			"approved_by": a.ApprovedBy,
			"approved_at": a.ApprovedAt,
		}).Error
	return translate(err)
}

func (r *releaseRepositoryImpl) DeleteApproversByRelease(ctx context.Context, releaseID entity.ID) error {
	_, err := gorm.G[Approver](r.db).Where("release_id = ?", releaseID.Uint()).Delete(ctx)
	return translate(err)
}

func (r *releaseRepositoryImpl) CreateTarget(ctx context.Context, releaseID entity.ID, target string) error {
	model := Target{ReleaseID: releaseID.Uint(), Target: target}
	return translate(gorm.G[Target](r.db).Create(ctx, &model))
}

func (r *releaseRepositoryImpl) DeleteTargetsByRelease(ctx context.Context, releaseID entity.ID) error {
	_, err := gorm.G[Target](r.db).Where("release_id = ?", releaseID.Uint()).Delete(ctx)
	return translate(err)
}

func (r *releaseRepositoryImpl) CreateRevokeApproval(ctx context.Context, rev *entity.RevokeApproval) error {
	model := RevokeApproval{ReleaseID: rev.ReleaseID.Uint(), Email: rev.Email, Reason: rev.Reason}
	return translate(gorm.G[RevokeApproval](r.db).Create(ctx, &model))
}

func (r *releaseRepositoryImpl) ListRevokeApprovals(ctx context.Context, releaseID entity.ID) ([]*entity.RevokeApproval, error) {
	founds, err := gorm.G[RevokeApproval](r.db).Where("release_id = ?", releaseID.Uint()).Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(m RevokeApproval, _ int) *entity.RevokeApproval {
		return m.ToEntity()
	}), nil
}

func (r *releaseRepositoryImpl) DeleteRevokeApprovalsByRelease(ctx context.Context, releaseID entity.ID) error {
	_, err := gorm.G[RevokeApproval](r.db).Where("release_id = ?", releaseID.Uint()).Delete(ctx)
	return translate(err)
}
