package sql

import (
	"github.com/botpanel/botpanel/internal/models"

	"gorm.io/gorm"
)

func ListTransactions(db *gorm.DB) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := db.Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func CreateTransaction(db *gorm.DB, transaction *models.Transaction) error {
	return db.Create(transaction).Error
}
