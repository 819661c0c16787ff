package repository

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens (or creates) the database at path and migrates the
// schema. An empty path yields an in-memory database, which tests use.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&Account{}, &Role{}, &AuthToken{},
		&Release{}, &ReleaseItem{}, &TalendReleaseItem{},
		&Approver{}, &Target{}, &RevokeApproval{},
		&Constant{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
