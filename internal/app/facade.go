package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade adapts use cases to the HTTP layer.
type StoreFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	settings  *usecase.SettingsUseCase
	dashboard *usecase.DashboardUseCase
	health    HealthChecker
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, settings *usecase.SettingsUseCase, dashboard *usecase.DashboardUseCase, health HealthChecker) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, settings: settings, dashboard: dashboard, health: health}
}

func (f *StoreFacade) Register(ctx context.Context, email, name, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, name, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, principal model.Principal, in model.Checkout) (*model.Order, error) {
	return f.orders.PlaceOrder(ctx, principal, in)
}

func (f *StoreFacade) Order(ctx context.Context, principal model.Principal, id string) (*model.Order, error) {
	return f.orders.Get(ctx, principal, id)
}

func (f *StoreFacade) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, principal)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, principal model.Principal, id, reason string) (*model.Order, error) {
	return f.orders.CancelOrder(ctx, principal, id, reason)
}

func (f *StoreFacade) Invoice(ctx context.Context, principal model.Principal, id string) (*model.Order, *model.Invoice, error) {
	return f.orders.Invoice(ctx, principal, id)
}

func (f *StoreFacade) CreatePaymentIntent(ctx context.Context, principal model.Principal, id string) (*model.PaymentIntent, error) {
	return f.orders.CreatePaymentIntent(ctx, principal, id)
}

func (f *StoreFacade) RecordPayment(ctx context.Context, principal model.Principal, id string, conf model.PaymentConfirmation) (*model.Order, error) {
	return f.orders.RecordPayment(ctx, principal, id, conf)
}

func (f *StoreFacade) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.ListAll(ctx, filter)
}

func (f *StoreFacade) AdvanceStatus(ctx context.Context, id string, in model.StatusChange) (*model.Order, error) {
	return f.orders.AdvanceStatus(ctx, id, in)
}

func (f *StoreFacade) UpdateRefundStatus(ctx context.Context, id string, status model.RefundStatus, amount *decimal.Decimal) (*model.Order, error) {
	return f.orders.UpdateRefundStatus(ctx, id, status, amount)
}

func (f *StoreFacade) AdjustFinancials(ctx context.Context, id string, overrides map[string]decimal.Decimal, shipping *decimal.Decimal) (*model.Order, error) {
	return f.orders.AdjustFinancials(ctx, id, overrides, shipping)
}

func (f *StoreFacade) ConfirmBankTransfer(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.ConfirmBankTransfer(ctx, id)
}

func (f *StoreFacade) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return f.dashboard.Stats(ctx)
}

func (f *StoreFacade) Settings(ctx context.Context) (*model.StoreSettings, error) {
	return f.settings.Get(ctx)
}

func (f *StoreFacade) UpdateSettings(ctx context.Context, settings model.StoreSettings) (*model.StoreSettings, error) {
	return f.settings.Update(ctx, settings)
}

// Health is nil when no checker is wired.
func (f *StoreFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
