package database

import (
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func seedOrders() []models.Order {
	return []models.Order{
		{
			OrderNo:          "ORD-001",
			CustomerName:     "John Doe",
			CustomerInitials: "JD",
			Items:            models.OrderItems{"iPhone 14 Pro, AirPods"},
			DeliveryInfo:     ptr("123 Main St, City"),
			PaymentStatus:    models.PaymentStatusPaid,
			OrderStatus:      models.OrderStatusPreparing,
			Amount:           ptr("1299.00"),
		},
		{
			OrderNo:          "ORD-002",
			CustomerName:     "Alice Smith",
			CustomerInitials: "AS",
			Items:            models.OrderItems{"MacBook Air, Magic Mouse"},
			DeliveryInfo:     ptr("456 Oak Ave, Town"),
			PaymentStatus:    models.PaymentStatusPending,
			OrderStatus:      models.OrderStatusReceived,
			Amount:           ptr("1599.00"),
		},
	}
}

func seedConversations() []models.Conversation {
	return []models.Conversation{
		{Name: "John Doe", Initials: "JD", LastMessage: "Thanks for the quick delivery!", Time: "2m", IsOnline: true, Platform: models.PlatformTelegramBot},
		{Name: "Sarah Wilson", Initials: "SW", LastMessage: "When will my order arrive?", Time: "5m", UnreadCount: 2, Platform: models.PlatformTelegramPersonal},
		{Name: "Mike Chen", Initials: "MC", LastMessage: "Great service!", Time: "15m", IsOnline: true, Platform: models.PlatformMessenger},
	}
}

func seedTransactions() []models.Transaction {
	return []models.Transaction{
		{TransactionID: "TXN-12345", Description: "Order Payment - ORD-001", Amount: decimal.RequireFromString("1299.00"), Type: models.TransactionTypeCredit, Time: "2 mins ago"},
		{TransactionID: "TXN-12346", Description: "Order Payment - ORD-002", Amount: decimal.RequireFromString("1599.00"), Type: models.TransactionTypeCredit, Time: "1 hour ago"},
	}
}

func seedSystemStatus() models.SystemStatus {
	return models.SystemStatus{
		BotStatus:     "online",
		WebhookStatus: "active",
		DBStatus:      "connected",
		APIStatus:     "monitoring",
		Uptime:        "99.8%",
		Version:       "v2.1.0",
		Build:         "#1542",
		Environment:   "production",
		Server:        "Render.com",
		Region:        "Singapore",
		LastDeploy:    "2 hours ago",
		CPUUsage:      34,
		MemoryUsage:   68,
		DiskUsage:     42,
	}
}

// Seed fills an empty database with the demo records. It does nothing once a status record exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SystemStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Debug("Database already seeded")
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		orders := seedOrders()
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}

		conversations := seedConversations()
		if err := tx.Create(&conversations).Error; err != nil {
			return err
		}

		// Messages are spaced by a second so that creation order is stable.
		first := conversations[0].ID
		base := time.Now().Add(-time.Minute)
		messages := []models.Message{
			{
				ConversationID: first,
				Content:        "Hey, I placed an order yesterday. Order #ORD-001. Can you check the status?",
				Timestamp:      "2:34 PM",
				CreatedAt:      base,
			},
			{
				ConversationID: first,
				Content:        "Hi John! I can see your order #ORD-001 is currently being prepared. It should be ready for delivery by tomorrow morning.",
				IsFromBot:      true,
				Timestamp:      "2:35 PM",
				CreatedAt:      base.Add(time.Second),
			},
		}
		if err := tx.Create(&messages).Error; err != nil {
			return err
		}

		transactions := seedTransactions()
		if err := tx.Create(&transactions).Error; err != nil {
			return err
		}

		status := seedSystemStatus()
		return tx.Create(&status).Error
	})
	if err != nil {
		return err
	}

	zap.L().Info("Database seeded with demo data")
	return nil
}
