package database

import (
	"embed"
	"fmt"

	"github.com/botpanel/botpanel/internal/configuration"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies the embedded goose migrations of the given database type.
func Migrate(db *gorm.DB, databaseType string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	var dialect goose.Dialect
	switch databaseType {
	case configuration.DatabasePostgres:
		dialect = goose.DialectPostgres
	case configuration.DatabaseSQLite:
		dialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported database type %q", databaseType)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err = goose.SetDialect(string(dialect)); err != nil {
		return err
	}

	if err = goose.Up(sqlDB, "migrations/"+databaseType); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err == nil {
		zap.L().Info("Database migrated", zap.String("type", databaseType), zap.Int64("version", version))
	}
	return nil
}
