package model

import "github.com/shopspring/decimal"

// DashboardStats aggregates the admin overview.
type DashboardStats struct {
	TotalSales   decimal.Decimal
	ActiveOrders int64
	ProductCount int64
	UserCount    int64
	RecentOrders []Order
}
