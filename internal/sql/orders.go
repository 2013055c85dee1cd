package sql

import (
	"errors"
	"strings"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func filterOrders(query *gorm.DB, params models.OrderQueryParams) *gorm.DB {
	switch status := params.Status; status {
	case "", "all":
	case string(models.PaymentStatusPending), string(models.PaymentStatusPaid):
		query = query.Where("payment_status = ?", status)
	default:
		query = query.Where("order_status = ?", status)
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(order_no) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}

	return query
}

// ListOrders returns the orders matching the filters, newest first.
func ListOrders(db *gorm.DB, params models.OrderQueryParams) ([]models.Order, error) {
	orders := []models.Order{}
	err := filterOrders(db.Model(&models.Order{}), params).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAllOrders returns every order. The dashboard aggregates over the full set.
func ListAllOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Find(&orders).Error
	return orders, err
}

func GetOrderByID(db *gorm.DB, id uuid.UUID) (models.Order, error) {
	var order models.Order

	if err := db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apierrors.NewAPIError(404, apierrors.ErrOrderNotFound)
		}
		return models.Order{}, err
	}

	return order, nil
}

// UpdateOrderStatus moves the order to the requested status. Payment states update the payment column.
func UpdateOrderStatus(db *gorm.DB, id uuid.UUID, body models.OrderStatusBody) (models.Order, error) {
	column := "order_status"
	if body.IsPaymentStatus() {
		column = "payment_status"
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).Where("id = ?", id).Update(column, body.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apierrors.NewAPIError(404, apierrors.ErrOrderNotFound)
		}
		return tx.Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	return order, nil
}
