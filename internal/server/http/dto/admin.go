package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// StatusRequest moves an order to a new status.
type StatusRequest struct {
	Status        string `json:"status"`
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceURL    string `json:"invoiceUrl"`
	Location      string `json:"location"`
	Description   string `json:"description"`
}

// RefundRequest updates refund bookkeeping.
type RefundRequest struct {
	RefundStatus string           `json:"refundStatus"`
	RefundAmount *decimal.Decimal `json:"refundAmount"`
}

// ItemPriceRequest overrides the unit price of one line item.
type ItemPriceRequest struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// FinancialsRequest adjusts prices of an existing order.
type FinancialsRequest struct {
	Items         []ItemPriceRequest `json:"items"`
	ShippingPrice *decimal.Decimal   `json:"shippingPrice"`
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	TotalSales   decimal.Decimal `json:"totalSales"`
	ActiveOrders int64           `json:"activeOrders"`
	ProductCount int64           `json:"productCount"`
	UserCount    int64           `json:"userCount"`
	RecentOrders []model.Order   `json:"recentOrders"`
}
