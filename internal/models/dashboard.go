package models

// DashboardStats is the payload of the dashboard summary cards and charts.
type DashboardStats struct {
	TotalOrders   int             `json:"totalOrders"`
	Revenue       string          `json:"revenue"`
	PendingUsers  int64           `json:"pendingUsers"`
	PendingOrders int64           `json:"pendingOrders"`
	TodayOrders   int             `json:"todayOrders"`
	OrdersPerDay  []int           `json:"ordersPerDay"`
	SalesTrend    []int           `json:"salesTrend"`
	TopCategories []CategoryShare `json:"topCategories"`
}

type CategoryShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}
