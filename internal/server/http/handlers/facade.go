package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (model.Principal, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, principal model.Principal, in model.Checkout) (*model.Order, error)
	Order(ctx context.Context, principal model.Principal, id string) (*model.Order, error)
	Orders(ctx context.Context, principal model.Principal) ([]model.Order, error)
	CancelOrder(ctx context.Context, principal model.Principal, id, reason string) (*model.Order, error)
	Invoice(ctx context.Context, principal model.Principal, id string) (*model.Order, *model.Invoice, error)
}

// PaymentFacade covers the online payment handshake.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, principal model.Principal, id string) (*model.PaymentIntent, error)
	RecordPayment(ctx context.Context, principal model.Principal, id string, conf model.PaymentConfirmation) (*model.Order, error)
}

// AdminFacade provides store operator operations.
type AdminFacade interface {
	AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	AdvanceStatus(ctx context.Context, id string, in model.StatusChange) (*model.Order, error)
	UpdateRefundStatus(ctx context.Context, id string, status model.RefundStatus, amount *decimal.Decimal) (*model.Order, error)
	AdjustFinancials(ctx context.Context, id string, overrides map[string]decimal.Decimal, shipping *decimal.Decimal) (*model.Order, error)
	ConfirmBankTransfer(ctx context.Context, id string) (*model.Order, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	Settings(ctx context.Context) (*model.StoreSettings, error)
	UpdateSettings(ctx context.Context, settings model.StoreSettings) (*model.StoreSettings, error)
}

// HealthFacade reports backing service health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	AdminFacade
	HealthFacade
}
