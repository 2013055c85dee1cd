package dashboard

import (
	"testing"
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func total(v float64) *float64 { return &v }

func amount(v string) *string { return &v }

func sum(values []int) int {
	s := 0
	for _, v := range values {
		s += v
	}
	return s
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, 3, 4, fixedNow)

	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, "$0.00", stats.Revenue)
	assert.Equal(t, int64(3), stats.PendingUsers)
	assert.Equal(t, int64(4), stats.PendingOrders)
	assert.Equal(t, 0, stats.TodayOrders)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, stats.OrdersPerDay)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, stats.SalesTrend)
	assert.Equal(t, []models.CategoryShare{
		{Name: "No categories yet", Percentage: 100, Color: "#6366F1"},
	}, stats.TopCategories)
}

func TestComputeStats_TodayAndOlderOrder(t *testing.T) {
	orders := []models.Order{
		{CreatedAt: fixedNow, Total: total(100)},
		{CreatedAt: fixedNow.AddDate(0, 0, -8), Amount: amount("50.00")},
	}

	stats := ComputeStats(orders, 0, 0, fixedNow)

	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, "$150.00", stats.Revenue)
	assert.Equal(t, 1, stats.TodayOrders)
	assert.Equal(t, 1, sum(stats.OrdersPerDay))
	assert.Equal(t, 1, stats.OrdersPerDay[6])
	assert.Equal(t, []int{0, 0, 0, 0, 0, 150}, stats.SalesTrend)
}

func TestComputeStats_RevenueIndependentOfOrdering(t *testing.T) {
	orders := []models.Order{
		{CreatedAt: fixedNow, Total: total(10.105)},
		{CreatedAt: fixedNow, Amount: amount("0.10")},
		{CreatedAt: fixedNow, Amount: amount("1299.00")},
		{CreatedAt: fixedNow, Total: total(0.005)},
	}
	reversed := []models.Order{orders[3], orders[2], orders[1], orders[0]}

	first := ComputeStats(orders, 0, 0, fixedNow)
	second := ComputeStats(reversed, 0, 0, fixedNow)

	assert.Equal(t, first.Revenue, second.Revenue)
	assert.Equal(t, "$1309.21", first.Revenue)

	parsed, err := decimal.NewFromString(first.Revenue[1:])
	require.NoError(t, err)
	assert.Equal(t, "1309.21", parsed.StringFixed(2))
}

func TestComputeStats_UnparsableAmountStillCounted(t *testing.T) {
	orders := []models.Order{
		{CreatedAt: fixedNow, Amount: amount("not-a-number")},
	}

	stats := ComputeStats(orders, 0, 0, fixedNow)

	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, "$0.00", stats.Revenue)
	assert.Equal(t, 1, stats.TodayOrders)
}

func TestComputeStats_DayBuckets(t *testing.T) {
	midnight := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("each trailing day lands in its own bucket", func(t *testing.T) {
		var orders []models.Order
		for i := range 7 {
			orders = append(orders, models.Order{CreatedAt: midnight.AddDate(0, 0, -i).Add(time.Hour)})
		}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1}, stats.OrdersPerDay)
	})

	t.Run("boundaries are half open", func(t *testing.T) {
		orders := []models.Order{
			{CreatedAt: midnight},
			{CreatedAt: midnight.Add(-time.Nanosecond)},
			{CreatedAt: midnight.AddDate(0, 0, -6)},
			{CreatedAt: midnight.AddDate(0, 0, -6).Add(-time.Nanosecond)},
		}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, []int{1, 0, 0, 0, 0, 1, 1}, stats.OrdersPerDay)
		assert.Equal(t, 1, stats.TodayOrders)
	})

	t.Run("future and zero timestamps are excluded", func(t *testing.T) {
		orders := []models.Order{
			{CreatedAt: midnight.AddDate(0, 0, 1), Total: total(5)},
			{Total: total(7)},
		}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, 0, sum(stats.OrdersPerDay))
		assert.Equal(t, 0, stats.TodayOrders)
		assert.Equal(t, 2, stats.TotalOrders)
		assert.Equal(t, "$12.00", stats.Revenue)
	})

	t.Run("later today still counts as today", func(t *testing.T) {
		orders := []models.Order{{CreatedAt: fixedNow.Add(2 * time.Hour)}}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, 1, stats.TodayOrders)
		assert.Equal(t, 1, stats.OrdersPerDay[6])
	})

	t.Run("uses the location of now", func(t *testing.T) {
		loc := time.FixedZone("UTC+8", 8*60*60)
		localNow := time.Date(2025, time.March, 15, 1, 0, 0, 0, loc)
		// 2025-03-14 18:00 UTC is 02:00 on the 15th in UTC+8.
		orders := []models.Order{{CreatedAt: time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC)}}
		stats := ComputeStats(orders, 0, 0, localNow)
		assert.Equal(t, 1, stats.TodayOrders)
	})
}

func TestComputeStats_SalesTrend(t *testing.T) {
	t.Run("always six months", func(t *testing.T) {
		stats := ComputeStats([]models.Order{{CreatedAt: fixedNow}}, 0, 0, fixedNow)
		assert.Len(t, stats.SalesTrend, 6)
		assert.Len(t, stats.OrdersPerDay, 7)
	})

	t.Run("months are anchored on day one", func(t *testing.T) {
		orders := []models.Order{
			{CreatedAt: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), Total: total(10)},
			{CreatedAt: time.Date(2024, time.September, 30, 23, 59, 59, 0, time.UTC), Total: total(1000)},
			{CreatedAt: time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC), Amount: amount("20.25")},
			{CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Total: total(30)},
		}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, []int{10, 0, 20, 0, 0, 30}, stats.SalesTrend)
	})

	t.Run("rounding happens once per bucket", func(t *testing.T) {
		orders := []models.Order{
			{CreatedAt: fixedNow, Total: total(0.4)},
			{CreatedAt: fixedNow, Total: total(0.4)},
			{CreatedAt: fixedNow.AddDate(0, -1, 0), Amount: amount("2.5")},
		}
		stats := ComputeStats(orders, 0, 0, fixedNow)
		assert.Equal(t, 1, stats.SalesTrend[5])
		assert.Equal(t, 3, stats.SalesTrend[4])
	})

	t.Run("month arithmetic at the end of a long month", func(t *testing.T) {
		now := time.Date(2025, time.May, 31, 9, 0, 0, 0, time.UTC)
		orders := []models.Order{
			{CreatedAt: time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC), Total: total(4)},
			{CreatedAt: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), Total: total(6)},
			{CreatedAt: time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), Total: total(100)},
		}
		stats := ComputeStats(orders, 0, 0, now)
		assert.Equal(t, []int{6, 0, 4, 0, 0, 0}, stats.SalesTrend)
	})
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[string]int64{
		"2.5":  3,
		"2.49": 2,
		"-2.5": -2,
		"0":    0,
	}
	for in, expected := range cases {
		assert.Equal(t, expected, roundHalfUp(decimal.RequireFromString(in)).IntPart(), in)
	}
}
