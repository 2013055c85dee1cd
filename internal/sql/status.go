package sql

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/models"

	"gorm.io/gorm"
)

// GetSystemStatus returns the singleton status record.
func GetSystemStatus(db *gorm.DB) (models.SystemStatus, error) {
	var status models.SystemStatus

	if err := db.Order("updated_at DESC").First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SystemStatus{}, apierrors.NewAPIError(404, apierrors.ErrStatusNotFound)
		}
		return models.SystemStatus{}, err
	}

	return status, nil
}

// SwapSystemStatus applies fields only if the record is still at current.Revision,
// and bumps the revision. On success it returns the record as this write left it,
// built from current rather than read back, so a later writer cannot leak into it.
// It returns false when another writer got there first.
func SwapSystemStatus(db *gorm.DB, current models.SystemStatus, fields map[string]any) (models.SystemStatus, bool, error) {
	updates := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		updates[column] = value
	}
	updates["revision"] = gorm.Expr("revision + 1")

	result := db.Model(&models.SystemStatus{}).
		Where("id = ? AND revision = ?", current.ID, current.Revision).
		Updates(updates)
	if result.Error != nil {
		return models.SystemStatus{}, false, result.Error
	}
	if result.RowsAffected != 1 {
		return models.SystemStatus{}, false, nil
	}

	written := current
	if err := setColumns(db, &written, fields); err != nil {
		return models.SystemStatus{}, false, err
	}
	written.Revision = current.Revision + 1
	written.UpdatedAt = time.Now()

	return written, true, nil
}

func setColumns(db *gorm.DB, status *models.SystemStatus, fields map[string]any) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(status); err != nil {
		return err
	}

	target := reflect.ValueOf(status).Elem()
	for column, value := range fields {
		field := stmt.Schema.LookUpField(column)
		if field == nil {
			return fmt.Errorf("unknown system status column %q", column)
		}
		if err := field.Set(context.Background(), target, value); err != nil {
			return fmt.Errorf("setting %s: %w", column, err)
		}
	}
	return nil
}

// UpdateRunningMetrics writes resource usage while the bot is online. The revision is left untouched.
func UpdateRunningMetrics(db *gorm.DB, cpuUsage, memoryUsage int) (int64, error) {
	result := db.Model(&models.SystemStatus{}).
		Where("bot_status = ?", "online").
		Updates(map[string]any{
			"cpu_usage":    cpuUsage,
			"memory_usage": memoryUsage,
		})
	return result.RowsAffected, result.Error
}
