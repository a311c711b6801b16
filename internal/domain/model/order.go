package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat GST rate applied to the items subtotal.
var TaxRate = decimal.RequireFromString("0.18")

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "OutForDelivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// TrackingStatusOrdered labels the tracking entry written on placement.
const TrackingStatusOrdered = "Ordered"

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderStatuses lists statuses in happy-path order followed by Cancelled.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// LeftWarehouse reports whether the order has physically shipped.
func (s OrderStatus) LeftWarehouse() bool {
	return s == OrderStatusShipped || s == OrderStatusOutForDelivery || s == OrderStatusDelivered
}

// PaymentMethod enumerates supported ways to pay.
type PaymentMethod string

const (
	PaymentMethodGateway      PaymentMethod = "GatewayOnline"
	PaymentMethodBankTransfer PaymentMethod = "BankTransferManual"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodGateway || m == PaymentMethodBankTransfer
}

// Payment result statuses used by the service itself.
const (
	PaymentStatusSuccess             = "success"
	PaymentStatusPendingVerification = "Pending Verification"
)

// RefundStatus tracks refund bookkeeping after cancellation.
type RefundStatus string

const (
	RefundStatusNone      RefundStatus = "None"
	RefundStatusRequested RefundStatus = "Requested"
	RefundStatusProcessed RefundStatus = "Processed"
)

// Valid reports whether s is a known refund status.
func (s RefundStatus) Valid() bool {
	return s == RefundStatusNone || s == RefundStatusRequested || s == RefundStatusProcessed
}

// ItemKind separates full purchases from sample requests.
type ItemKind string

const (
	ItemKindRegular ItemKind = "regular"
	ItemKindSample  ItemKind = "sample"
)

// Address is a postal address with contact phone.
type Address struct {
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

// IsZero reports whether no field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// LineItem is a snapshot of a product at order time.
type LineItem struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	ProductRef        string          `json:"productRef"`
	MaterialType      string          `json:"materialType"`
	Image             string          `json:"image,omitempty"`
	Kind              ItemKind        `json:"kind"`
	CustomizationNote string          `json:"customizationNote,omitempty"`
	RelatedSampleRef  string          `json:"relatedSampleRef,omitempty"`
	RiskAccepted      bool            `json:"riskAccepted"`
}

// Total returns unit price multiplied by quantity.
func (i LineItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TrackingEntry is one immutable record of the customer-facing audit trail.
type TrackingEntry struct {
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentResult captures the latest payment confirmation data.
type PaymentResult struct {
	ExternalID string    `json:"externalId,omitempty"`
	Status     string    `json:"status"`
	UpdateTime time.Time `json:"updateTime"`
	PayerEmail string    `json:"payerEmail,omitempty"`
}

// Order is the root aggregate persisted as a single document.
type Order struct {
	ID            string `json:"id"`
	UserID        int64  `json:"userId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`

	Items           []LineItem      `json:"orderItems"`
	ShippingAddress Address         `json:"shippingAddress"`
	BillingAddress  Address         `json:"billingAddress"`
	TrackingHistory []TrackingEntry `json:"trackingHistory"`

	PaymentMethod   PaymentMethod  `json:"paymentMethod"`
	PaymentResult   *PaymentResult `json:"paymentResult,omitempty"`
	GatewayOrderRef string         `json:"gatewayOrderRef,omitempty"`

	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`

	IsPaid      bool       `json:"isPaid"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	IsDelivered bool       `json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	Status OrderStatus `json:"status"`

	InvoiceNumber   string     `json:"invoiceNumber,omitempty"`
	InvoiceURL      string     `json:"invoiceUrl,omitempty"`
	InvoiceDate     *time.Time `json:"invoiceDate,omitempty"`
	IsManualInvoice bool       `json:"isManualInvoice"`

	CancellationReason string           `json:"cancellationReason,omitempty"`
	RefundStatus       RefundStatus     `json:"refundStatus"`
	RefundAmount       *decimal.Decimal `json:"refundAmount,omitempty"`
	RefundDate         *time.Time       `json:"refundDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Track appends a tracking entry. History is never rewritten.
func (o *Order) Track(status, location, description string, at time.Time) {
	o.TrackingHistory = append(o.TrackingHistory, TrackingEntry{
		Status:      status,
		Location:    location,
		Description: description,
		Timestamp:   at,
	})
}

// FindItem returns index of line item with the given id or -1.
func (o *Order) FindItem(id string) int {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to mutate.
func (o Order) Clone() Order {
	out := o
	out.Items = append([]LineItem(nil), o.Items...)
	out.TrackingHistory = append([]TrackingEntry(nil), o.TrackingHistory...)
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		out.PaymentResult = &pr
	}
	if o.RefundAmount != nil {
		amount := *o.RefundAmount
		out.RefundAmount = &amount
	}
	return out
}

// OrderFilter narrows admin listings.
type OrderFilter struct {
	Status OrderStatus
	Limit  int
}
