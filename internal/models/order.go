package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusEnroute   OrderStatus = "enroute"
	OrderStatusDelivered OrderStatus = "delivered"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Order struct {
	ID               uuid.UUID     `gorm:"type:uuid;primarykey"             json:"id"`
	OrderNo          string        `gorm:"uniqueIndex;not null"             json:"orderNo"`
	CustomerName     string        `gorm:"not null"                         json:"customerName"`
	CustomerInitials string        `                                        json:"customerInitials"`
	Items            OrderItems    `gorm:"type:text"                        json:"items"`
	DeliveryInfo     *string       `                                        json:"deliveryInfo"`
	PaymentStatus    PaymentStatus `gorm:"not null;default:'pending'"       json:"paymentStatus"`
	OrderStatus      OrderStatus   `gorm:"not null;default:'received'"      json:"orderStatus"`
	Amount           *string       `                                        json:"amount,omitempty"`
	Total            *float64      `                                        json:"total,omitempty"`
	CreatedAt        time.Time     `                                        json:"createdAt"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ResolvedAmount returns the canonical monetary value of the order.
// A numeric total wins over the legacy amount string; anything unusable counts as zero.
func (o Order) ResolvedAmount() decimal.Decimal {
	if o.Total != nil && !math.IsNaN(*o.Total) && !math.IsInf(*o.Total, 0) {
		return decimal.NewFromFloat(*o.Total)
	}

	if o.Amount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*o.Amount))
		if err == nil {
			return amount
		}
	}

	return decimal.Zero
}

type OrderActivity struct {
	ID            uuid.UUID     `json:"id"`
	OrderNo       string        `json:"order_no"`
	OrderStatus   OrderStatus   `json:"order_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

func (o *Order) ToActivity() OrderActivity {
	return OrderActivity{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
	}
}

// OrderQueryParams mirrors the filters of the orders table.
type OrderQueryParams struct {
	Status string `json:"status" validate:"omitempty,oneof=all received preparing enroute delivered pending paid"`
	Search string `json:"search" validate:"omitempty,max=100"`
}

type OrderStatusBody struct {
	Status string `json:"status" validate:"required,oneof=received preparing enroute delivered pending paid"`
}

// IsPaymentStatus reports whether the requested status targets the payment column.
func (b OrderStatusBody) IsPaymentStatus() bool {
	return b.Status == string(PaymentStatusPending) || b.Status == string(PaymentStatusPaid)
}
