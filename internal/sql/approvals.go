package sql

import (
	"github.com/botpanel/botpanel/internal/models"

	"gorm.io/gorm"
)

// CountPendingApprovals returns the pending user and pending order approval counts.
func CountPendingApprovals(db *gorm.DB) (users int64, orders int64, err error) {
	if err = db.Model(&models.PendingApproval{}).Count(&users).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&models.PendingOrderApproval{}).Count(&orders).Error; err != nil {
		return 0, 0, err
	}
	return users, orders, nil
}
