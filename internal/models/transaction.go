package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primarykey"  json:"id"`
	TransactionID string          `gorm:"uniqueIndex;not null"  json:"transactionId"`
	Description   string          `                             json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2)"    json:"amount"`
	Type          TransactionType `gorm:"not null"              json:"type"`
	Time          string          `                             json:"time"`
	CreatedAt     time.Time       `                             json:"createdAt"`
}

func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TransactionActivity struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
}

func (t *Transaction) ToActivity() TransactionActivity {
	return TransactionActivity{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		Type:          t.Type,
	}
}

type BalanceResponse struct {
	Balance       string `json:"balance"`
	Pending       string `json:"pending"`
	MonthlyVolume string `json:"monthlyVolume"`
}

type WithdrawBody struct {
	Amount string `json:"amount" validate:"required,max=32,positive_decimal"`
}

type WithdrawResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transactionId"`
}
