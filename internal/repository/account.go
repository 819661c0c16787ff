package repository

import (
	"context"

	"github.com/relgate/relgate/internal/entity"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, acc *entity.Account) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GrantRole(ctx context.Context, accountID entity.ID, role entity.RoleGroup) error
	CreateToken(ctx context.Context, accountID entity.ID, token string) error
	// GetByToken resolves a bearer token to its account (roles loaded) and
	// the token row itself so callers can check validity.
	GetByToken(ctx context.Context, token string) (*entity.Account, *entity.AuthToken, error)
}

type accountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepositoryImpl{db: db}
}

func (r *accountRepositoryImpl) Create(ctx context.Context, acc *entity.Account) (*entity.Account, error) {
	model := Account{
		Email:     acc.Email,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		TeamName:  acc.TeamName,
	}
	for _, role := range acc.Roles {
		model.Roles = append(model.Roles, Role{Role: string(role)})
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *accountRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var model Account
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *accountRepositoryImpl) GrantRole(ctx context.Context, accountID entity.ID, role entity.RoleGroup) error {
	n, err := gorm.G[Role](r.db).
		Where("account_id = ? AND role = ?", accountID.Uint(), string(role)).
		Count(ctx, "id")
	if err != nil {
		return translate(err)
	}
	if n > 0 {
		return nil
	}
	model := Role{AccountID: accountID.Uint(), Role: string(role)}
	return translate(gorm.G[Role](r.db).Create(ctx, &model))
}

func (r *accountRepositoryImpl) CreateToken(ctx context.Context, accountID entity.ID, token string) error {
	model := AuthToken{AccountID: accountID.Uint(), Token: token, Active: true}
	return translate(gorm.G[AuthToken](r.db).Create(ctx, &model))
}

func (r *accountRepositoryImpl) GetByToken(ctx context.Context, token string) (*entity.Account, *entity.AuthToken, error) {
	var tok AuthToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&tok).Error
	if err != nil {
		return nil, nil, translate(err)
	}
	var acc Account
	err = r.db.WithContext(ctx).Preload("Roles").Where("id = ?", tok.AccountID).First(&acc).Error
	if err != nil {
		return nil, nil, translate(err)
	}
	return acc.ToEntity(), tok.ToEntity(), nil
}
