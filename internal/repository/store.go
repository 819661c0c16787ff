package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the per-aggregate repositories over one database handle.
type Store struct {
	db *gorm.DB

	Releases  ReleaseRepository
	Accounts  AccountRepository
	Constants ConstantRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Releases:  NewReleaseRepository(db),
		Accounts:  NewAccountRepository(db),
		Constants: NewConstantRepository(db),
	}
}

// Atomic runs fn against a Store bound to a single transaction. Every write
// inside fn commits together or not at all; any error rolls everything back.
func (s *Store) Atomic(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
