package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, email, name, password string) (string, error)
	AuthenticateFn func(ctx context.Context, email, password string) (string, error)
	ParseFn        func(token string) (model.Principal, error)
}

// Register delegates to override or returns static token.
func (s AuthFacadeStub) Register(ctx context.Context, email, name, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return "token", nil
}

// Authenticate delegates to override or returns static token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken delegates to override or returns a customer principal.
func (s AuthFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Principal{UserID: 1, Role: model.RoleCustomer}, nil
}

// StoreFacadeStub implements every HTTP facade. Unset overrides return
// minimal successful results.
type StoreFacadeStub struct {
	AuthFacadeStub

	PlaceFn      func(context.Context, model.Principal, model.Checkout) (*model.Order, error)
	OrderFn      func(context.Context, model.Principal, string) (*model.Order, error)
	OrdersFn     func(context.Context, model.Principal) ([]model.Order, error)
	CancelFn     func(context.Context, model.Principal, string, string) (*model.Order, error)
	InvoiceFn    func(context.Context, model.Principal, string) (*model.Order, *model.Invoice, error)
	IntentFn     func(context.Context, model.Principal, string) (*model.PaymentIntent, error)
	PaymentFn    func(context.Context, model.Principal, string, model.PaymentConfirmation) (*model.Order, error)
	AllOrdersFn  func(context.Context, model.OrderFilter) ([]model.Order, error)
	AdvanceFn    func(context.Context, string, model.StatusChange) (*model.Order, error)
	RefundFn     func(context.Context, string, model.RefundStatus, *decimal.Decimal) (*model.Order, error)
	FinancialsFn func(context.Context, string, map[string]decimal.Decimal, *decimal.Decimal) (*model.Order, error)
	TransferFn   func(context.Context, string) (*model.Order, error)
	DashboardFn  func(context.Context) (*model.DashboardStats, error)
	SettingsFn   func(context.Context) (*model.StoreSettings, error)
	UpdateFn     func(context.Context, model.StoreSettings) (*model.StoreSettings, error)
	HealthFn     func(context.Context) error
}

// PlaceOrder delegates to override or echoes a pending order.
func (s StoreFacadeStub) PlaceOrder(ctx context.Context, principal model.Principal, in model.Checkout) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, principal, in)
	}
	return &model.Order{ID: "order-1", UserID: principal.UserID, Status: model.OrderStatusPending, PaymentMethod: in.PaymentMethod}, nil
}

// Order delegates to override or returns order with requested id.
func (s StoreFacadeStub) Order(ctx context.Context, principal model.Principal, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, principal, id)
	}
	return &model.Order{ID: id, UserID: principal.UserID}, nil
}

// Orders delegates to override or returns a single order.
func (s StoreFacadeStub) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, principal)
	}
	return []model.Order{{ID: "order-1", UserID: principal.UserID}}, nil
}

// CancelOrder delegates to override or returns cancelled order.
func (s StoreFacadeStub) CancelOrder(ctx context.Context, principal model.Principal, id, reason string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, principal, id, reason)
	}
	return &model.Order{ID: id, Status: model.OrderStatusCancelled, CancellationReason: reason}, nil
}

// Invoice delegates to override or returns a stored invoice.
func (s StoreFacadeStub) Invoice(ctx context.Context, principal model.Principal, id string) (*model.Order, *model.Invoice, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, principal, id)
	}
	return &model.Order{ID: id}, &model.Invoice{OrderID: id, Number: "INV-1", PDF: []byte("%PDF-1.3")}, nil
}

// CreatePaymentIntent delegates to override or returns fixed intent.
func (s StoreFacadeStub) CreatePaymentIntent(ctx context.Context, principal model.Principal, id string) (*model.PaymentIntent, error) {
	if s.IntentFn != nil {
		return s.IntentFn(ctx, principal, id)
	}
	return &model.PaymentIntent{OrderRef: "gw_" + id, Amount: 100, Currency: "INR", Receipt: id}, nil
}

// RecordPayment delegates to override or returns paid order.
func (s StoreFacadeStub) RecordPayment(ctx context.Context, principal model.Principal, id string, conf model.PaymentConfirmation) (*model.Order, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, principal, id, conf)
	}
	return &model.Order{ID: id, IsPaid: true}, nil
}

// AllOrders delegates to override or returns empty listing.
func (s StoreFacadeStub) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return nil, nil
}

// AdvanceStatus delegates to override or returns order in target status.
func (s StoreFacadeStub) AdvanceStatus(ctx context.Context, id string, in model.StatusChange) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, id, in)
	}
	return &model.Order{ID: id, Status: in.Status}, nil
}

// UpdateRefundStatus delegates to override or returns updated order.
func (s StoreFacadeStub) UpdateRefundStatus(ctx context.Context, id string, status model.RefundStatus, amount *decimal.Decimal) (*model.Order, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, id, status, amount)
	}
	return &model.Order{ID: id, RefundStatus: status, RefundAmount: amount}, nil
}

// AdjustFinancials delegates to override or returns order unchanged.
func (s StoreFacadeStub) AdjustFinancials(ctx context.Context, id string, overrides map[string]decimal.Decimal, shipping *decimal.Decimal) (*model.Order, error) {
	if s.FinancialsFn != nil {
		return s.FinancialsFn(ctx, id, overrides, shipping)
	}
	return &model.Order{ID: id}, nil
}

// ConfirmBankTransfer delegates to override or returns paid order.
func (s StoreFacadeStub) ConfirmBankTransfer(ctx context.Context, id string) (*model.Order, error) {
	if s.TransferFn != nil {
		return s.TransferFn(ctx, id)
	}
	return &model.Order{ID: id, IsPaid: true}, nil
}

// Dashboard delegates to override or returns empty stats.
func (s StoreFacadeStub) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	return &model.DashboardStats{RecentOrders: []model.Order{}}, nil
}

// Settings delegates to override or returns gateway-only settings.
func (s StoreFacadeStub) Settings(ctx context.Context) (*model.StoreSettings, error) {
	if s.SettingsFn != nil {
		return s.SettingsFn(ctx)
	}
	return &model.StoreSettings{GatewayEnabled: true}, nil
}

// UpdateSettings delegates to override or echoes input.
func (s StoreFacadeStub) UpdateSettings(ctx context.Context, settings model.StoreSettings) (*model.StoreSettings, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, settings)
	}
	return &settings, nil
}

// Health delegates to override or reports healthy.
func (s StoreFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
