package db

import (
	"fmt"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database for the configured driver. Postgres is the
// production target; sqlite backs local runs and tests.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		// One connection keeps in-memory databases and PRAGMAs consistent.
		sqlDB.SetMaxOpenConns(1)
	}

	return database, nil
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func MigrateDatabase(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Submission{},
		&models.Comment{},
	}

	migrator := database.Migrator()

	for _, model := range tables {
		if !migrator.HasTable(model) {
			if err := database.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
