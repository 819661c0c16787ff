package repository

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/relgate/relgate/internal/entity"
	"gorm.io/gorm"
)

type ConstantRepository interface {
	List(ctx context.Context) ([]*entity.Constant, error)
	ListByServices(ctx context.Context, services []string) ([]*entity.Constant, error)
	// Upsert inserts or replaces the constant for its service.
	Upsert(ctx context.Context, c *entity.Constant) error
}

type constantRepositoryImpl struct {
	db *gorm.DB
}

func NewConstantRepository(db *gorm.DB) ConstantRepository {
	return &constantRepositoryImpl{db: db}
}

func (r *constantRepositoryImpl) List(ctx context.Context) ([]*entity.Constant, error) {
	founds, err := gorm.G[Constant](r.db).Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(m Constant, _ int) *entity.Constant {
		return m.ToEntity()
	}), nil
}

func (r *constantRepositoryImpl) ListByServices(ctx context.Context, services []string) ([]*entity.Constant, error) {
	founds, err := gorm.G[Constant](r.db).Where("service IN ?", services).Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(m Constant, _ int) *entity.Constant {
		return m.ToEntity()
	}), nil
}

func (r *constantRepositoryImpl) Upsert(ctx context.Context, c *entity.Constant) error {
	var existing Constant
	err := r.db.WithContext(ctx).Where("service = ?", c.Service).First(&existing).Error
	switch {
	case err == nil:
		return translate(r.db.WithContext(ctx).Model(&existing).
			Updates(map[string]any{"repo": c.Repo, "name": c.Name}).Error)
	case errors.Is(translate(err), entity.ErrNotFound):
		var model Constant
		model.FromEntity(c)
		return translate(r.db.WithContext(ctx).Create(&model).Error)
	default:
		return translate(err)
	}
}
