package repository

import (
	"errors"

	"github.com/relgate/relgate/internal/entity"
	"gorm.io/gorm"
)

// translate maps storage errors onto the entity taxonomy so usecases never
// see gorm sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.NewError(entity.ReasonValidationFailed, "duplicate record")
	}
	return err
}
