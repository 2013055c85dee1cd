package dashboard

import (
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/shopspring/decimal"
)

const (
	trailingDays   = 7
	trailingMonths = 6
)

var half = decimal.New(5, -1)

// ComputeStats aggregates a snapshot of orders into the dashboard summary.
// Calendar boundaries are taken in the location of now.
func ComputeStats(orders []models.Order, pendingUsers, pendingOrders int64, now time.Time) models.DashboardStats {
	today := startOfDay(now)
	days := dayWindows(today, trailingDays)
	months := monthWindows(now, trailingMonths)

	ordersPerDay := make([]int, trailingDays)
	monthTotals := make([]decimal.Decimal, trailingMonths)
	for i := range monthTotals {
		monthTotals[i] = decimal.Zero
	}

	revenue := decimal.Zero
	todayOrders := 0

	for _, order := range orders {
		amount := order.ResolvedAmount()
		revenue = revenue.Add(amount)

		if order.CreatedAt.IsZero() {
			continue
		}

		if i := locate(days, order.CreatedAt); i >= 0 {
			ordersPerDay[i]++
			if i == trailingDays-1 {
				todayOrders++
			}
		}

		if i := locate(months, order.CreatedAt); i >= 0 {
			monthTotals[i] = monthTotals[i].Add(amount)
		}
	}

	salesTrend := make([]int, trailingMonths)
	for i, total := range monthTotals {
		salesTrend[i] = int(roundHalfUp(total).IntPart())
	}

	return models.DashboardStats{
		TotalOrders:   len(orders),
		Revenue:       FormatRevenue(revenue),
		PendingUsers:  pendingUsers,
		PendingOrders: pendingOrders,
		TodayOrders:   todayOrders,
		OrdersPerDay:  ordersPerDay,
		SalesTrend:    salesTrend,
		TopCategories: TopCategories(orders),
	}
}

// FormatRevenue renders a sum as a dollar string with two decimals.
func FormatRevenue(sum decimal.Decimal) string {
	return "$" + sum.StringFixed(2)
}

// roundHalfUp rounds to the nearest integer, ties toward positive infinity.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
