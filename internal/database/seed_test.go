package database_test

import (
	"testing"

	"github.com/botpanel/botpanel/internal/database"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/tests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := tests.NewSQLiteDB(t)

	require.NoError(t, database.Seed(db))

	t.Run("creates the demo records", func(t *testing.T) {
		var orders []models.Order
		require.NoError(t, db.Order("order_no").Find(&orders).Error)
		require.Len(t, orders, 2)
		assert.Equal(t, "ORD-001", orders[0].OrderNo)
		assert.Equal(t, models.OrderItems{"iPhone 14 Pro, AirPods"}, orders[0].Items)
		assert.Equal(t, "1299.00", orders[0].ResolvedAmount().StringFixed(2))

		var conversations int64
		require.NoError(t, db.Model(&models.Conversation{}).Count(&conversations).Error)
		assert.Equal(t, int64(3), conversations)

		var messages []models.Message
		require.NoError(t, db.Order("created_at").Find(&messages).Error)
		require.Len(t, messages, 2)
		assert.False(t, messages[0].IsFromBot)
		assert.True(t, messages[1].IsFromBot)

		var transactions []models.Transaction
		require.NoError(t, db.Order("transaction_id").Find(&transactions).Error)
		require.Len(t, transactions, 2)
		assert.Equal(t, "1599.00", transactions[1].Amount.StringFixed(2))

		var status models.SystemStatus
		require.NoError(t, db.First(&status).Error)
		assert.Equal(t, "online", status.BotStatus)
		assert.Equal(t, "monitoring", status.APIStatus)
		assert.Equal(t, int64(0), status.Revision)
	})

	t.Run("is a no-op on a seeded database", func(t *testing.T) {
		require.NoError(t, database.Seed(db))

		var orders int64
		require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
		assert.Equal(t, int64(2), orders)

		var statuses int64
		require.NoError(t, db.Model(&models.SystemStatus{}).Count(&statuses).Error)
		assert.Equal(t, int64(1), statuses)
	})
}

func TestMigrateRejectsUnknownDatabase(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	assert.Error(t, database.Migrate(db, "mysql"))
}
