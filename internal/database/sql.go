package database

import (
	"fmt"

	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func dialector(config models.DatabaseConfiguration) (gorm.Dialector, error) {
	switch config.Type {
	case configuration.DatabasePostgres:
		pg := config.Postgres
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			pg.Host, pg.User, pg.Password, pg.Name, pg.Port, pg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case configuration.DatabaseSQLite:
		return sqlite.Open(config.SQLite.Path + "?_foreign_keys=on&_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", config.Type)
	}
}

// InitDB connects to the configured database. The process owning the schema
// also applies pending migrations and seeds demo data when asked to.
func InitDB(config models.DatabaseConfiguration, ownsSchema bool) *gorm.DB {
	dial, err := dialector(config)
	if err != nil {
		zap.L().Fatal("Invalid database configuration", zap.Error(err))
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	if !ownsSchema {
		return db
	}

	if err = Migrate(db, config.Type); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}

	if config.Seed {
		if err = Seed(db); err != nil {
			zap.L().Fatal("Failed to seed database", zap.Error(err))
		}
	}

	return db
}
