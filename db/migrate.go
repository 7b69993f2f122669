package db

import (
	"errors"

	"storefront/entities"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SchemaVersion is bumped on every schema change. A store built with any other
// version is dropped and recreated on open; no rows survive.
const SchemaVersion = 3

// children before parents so drops never trip a foreign key
func tables() []interface{} {
	return []interface{}{
		&entities.Favorite{},
		&entities.CartItem{},
		&entities.Product{},
		&entities.Category{},
		&entities.User{},
		&entities.SchemaMeta{},
	}
}

// Migrate brings the schema to SchemaVersion.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	return migrateTo(db, SchemaVersion, log)
}

func migrateTo(db *gorm.DB, version int, log *logrus.Logger) error {
	current, err := StoredVersion(db)
	if err != nil {
		return err
	}
	if current == version {
		log.WithField("version", version).Debug("Schema is up to date")
		return nil
	}

	log.WithFields(logrus.Fields{"from": current, "to": version}).Warn("Schema version changed, recreating all tables")
	return ResetSchema(db, version, log)
}

// ResetSchema drops every table and recreates them at version.
func ResetSchema(db *gorm.DB, version int, log *logrus.Logger) error {
	if err := db.Migrator().DropTable(tables()...); err != nil {
		log.WithError(err).Error("Failed to drop tables")
		return err
	}

	// AutoMigrate orders tables by their dependencies
	if err := db.AutoMigrate(tables()...); err != nil {
		log.WithError(err).Error("Failed to auto migrate")
		return err
	}

	if err := db.Create(&entities.SchemaMeta{ID: 1, Version: version}).Error; err != nil {
		return err
	}
	log.WithField("version", version).Info("Database migrations completed successfully!")
	return nil
}

// StoredVersion returns the schema version recorded in the store, or 0 for a
// store that has never been migrated.
func StoredVersion(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(&entities.SchemaMeta{}) {
		return 0, nil
	}
	var meta entities.SchemaMeta
	err := db.First(&meta, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return meta.Version, nil
}
