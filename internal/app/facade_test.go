package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/config"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/notify"
	pkgAuth "github.com/polkiloo/fabricstore/internal/pkg/auth"
	testhelpers "github.com/polkiloo/fabricstore/internal/test"
	"github.com/polkiloo/fabricstore/internal/usecase"
)

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

type facadeFixture struct {
	facade   *StoreFacade
	invoices *testhelpers.InvoiceRepositoryStub
	notifier *testhelpers.NotifierStub
}

func newFacade(health HealthChecker) *facadeFixture {
	cfg := &config.Config{
		PublicBaseURL: "https://shop.example",
		AdminAccounts: []string{"ops@example.com"},
		Company:       config.CompanyInfo{Name: "Weaver Mills"},
		DefaultSettings: config.SettingsDefaults{
			GatewayEnabled:        true,
			BankTransferEnabled:   true,
			NotifyCustomers:       true,
			ShippingFlatRate:      decimal.NewFromInt(150),
			FreeShippingThreshold: decimal.NewFromInt(1000),
		},
	}

	issued := map[string]pkgAuth.Claims{}
	strategy := testhelpers.StrategyStub{
		IssueFn: func(claims pkgAuth.Claims) (string, error) {
			token := fmt.Sprintf("tok-%d", claims.UserID)
			issued[token] = claims
			return token, nil
		},
		ParseFn: func(token string) (pkgAuth.Claims, error) {
			claims, ok := issued[token]
			if !ok {
				return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
			}
			return claims, nil
		},
	}

	users := testhelpers.NewUserRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	products := &testhelpers.ProductRepositoryStub{Products: map[string]model.Product{
		"linen": {ID: "linen", Name: "Irish Linen", PricePerMeter: decimal.NewFromInt(100), SamplePrice: decimal.NewFromInt(25)},
	}}
	f := &facadeFixture{
		invoices: &testhelpers.InvoiceRepositoryStub{},
		notifier: &testhelpers.NotifierStub{},
	}

	settings := usecase.NewSettingsUseCase(&testhelpers.SettingsRepositoryStub{}, cfg)
	seq := 0
	orderUC := usecase.NewOrderUseCase(usecase.OrderParams{
		Orders:   orders,
		Products: products,
		Users:    users,
		Invoices: f.invoices,
		Settings: settings,
		Gateway:  testhelpers.GatewayStub{},
		Renderer: &testhelpers.RendererStub{},
		Composer: notify.NewComposer(cfg),
		Notifier: f.notifier,
		Clock:    func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("f00dcafe-0000-4000-8000-%012d", seq)
		},
		Config: cfg,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})

	f.facade = NewStoreFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy, cfg),
		orderUC,
		settings,
		usecase.NewDashboardUseCase(orders, products, users),
		health,
	)
	return f
}

func (f *facadeFixture) login(t *testing.T, email string) model.Principal {
	t.Helper()
	ctx := context.Background()
	if _, err := f.facade.Register(ctx, email, "", "secret1"); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	token, err := f.facade.Authenticate(ctx, email, "secret1")
	if err != nil {
		t.Fatalf("authenticate %s: %v", email, err)
	}
	principal, err := f.facade.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return principal
}

func TestStoreFacadeAuth(t *testing.T) {
	f := newFacade(nil)
	customer := f.login(t, "asha@example.com")
	if customer.IsAdmin() || customer.Email != "asha@example.com" {
		t.Fatalf("expected customer principal, got %+v", customer)
	}
	admin := f.login(t, "ops@example.com")
	if !admin.IsAdmin() {
		t.Fatalf("expected admin role for configured account, got %+v", admin)
	}

	if _, err := f.facade.Register(context.Background(), "asha@example.com", "", "secret1"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate registration to fail, got %v", err)
	}
	if _, err := f.facade.Authenticate(context.Background(), "asha@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := f.facade.ParseToken("forged"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestStoreFacadeOrderLifecycle(t *testing.T) {
	f := newFacade(nil)
	ctx := context.Background()
	customer := f.login(t, "asha@example.com")
	admin := f.login(t, "ops@example.com")

	order, err := f.facade.PlaceOrder(ctx, customer, model.Checkout{
		Items: []model.CheckoutItem{{ProductRef: "linen", Quantity: 10}},
		ShippingAddress: model.Address{
			AddressLine: "12 Ring Road",
			City:        "Surat",
			PostalCode:  "395002",
			Country:     "India",
			Phone:       "+91 99999 00000",
		},
		PaymentMethod: model.PaymentMethodGateway,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if !order.TotalPrice.Equal(decimal.NewFromInt(1180)) {
		t.Fatalf("expected total 1180, got %s", order.TotalPrice)
	}

	listed, err := f.facade.Orders(ctx, customer)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}
	if _, err := f.facade.Order(ctx, customer, order.ID); err != nil {
		t.Fatalf("get order: %v", err)
	}
	if _, err := f.facade.Order(ctx, admin, order.ID); err != nil {
		t.Fatalf("admin get order: %v", err)
	}

	intent, err := f.facade.CreatePaymentIntent(ctx, customer, order.ID)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.Amount != 118000 {
		t.Fatalf("expected amount in paise, got %d", intent.Amount)
	}
	paid, err := f.facade.RecordPayment(ctx, customer, order.ID, model.PaymentConfirmation{
		OrderRef:   intent.OrderRef,
		PaymentRef: "pay_1",
		Signature:  "valid",
	})
	if err != nil || !paid.IsPaid {
		t.Fatalf("expected paid order, got %+v err=%v", paid, err)
	}

	shipped, err := f.facade.AdvanceStatus(ctx, order.ID, model.StatusChange{Status: model.OrderStatusShipped})
	if err != nil {
		t.Fatalf("advance status: %v", err)
	}
	if shipped.InvoiceURL == "" {
		t.Fatalf("expected invoice url after shipping")
	}
	_, inv, err := f.facade.Invoice(ctx, customer, order.ID)
	if err != nil || inv == nil {
		t.Fatalf("expected stored invoice, got %v err=%v", inv, err)
	}

	if _, err := f.facade.CancelOrder(ctx, customer, order.ID, ""); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected shipped order cancel to fail, got %v", err)
	}

	all, err := f.facade.AllOrders(ctx, model.OrderFilter{Status: model.OrderStatusShipped})
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one shipped order, got %v err=%v", all, err)
	}

	stats, err := f.facade.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !stats.TotalSales.Equal(decimal.NewFromInt(1180)) || stats.ActiveOrders != 1 || stats.ProductCount != 1 || stats.UserCount != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(f.notifier.Sent()) == 0 {
		t.Fatalf("expected notifications to be enqueued")
	}
}

func TestStoreFacadeAdminAdjustments(t *testing.T) {
	f := newFacade(nil)
	ctx := context.Background()
	customer := f.login(t, "asha@example.com")

	order, err := f.facade.PlaceOrder(ctx, customer, model.Checkout{
		Items: []model.CheckoutItem{{ProductRef: "linen", Quantity: 2}},
		ShippingAddress: model.Address{
			AddressLine: "12 Ring Road",
			City:        "Surat",
			PostalCode:  "395002",
			Country:     "India",
			Phone:       "+91 99999 00000",
		},
		PaymentMethod:    model.PaymentMethodBankTransfer,
		PaymentReference: "UTR42",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	confirmed, err := f.facade.ConfirmBankTransfer(ctx, order.ID)
	if err != nil || !confirmed.IsPaid {
		t.Fatalf("expected confirmed transfer, got %+v err=%v", confirmed, err)
	}

	shipping := decimal.Zero
	adjusted, err := f.facade.AdjustFinancials(ctx, order.ID, map[string]decimal.Decimal{order.Items[0].ID: decimal.NewFromInt(90)}, &shipping)
	if err != nil {
		t.Fatalf("adjust financials: %v", err)
	}
	if !adjusted.TotalPrice.Equal(decimal.RequireFromString("212.4")) {
		t.Fatalf("expected total 212.40, got %s", adjusted.TotalPrice)
	}

	cancelled, err := f.facade.CancelOrder(ctx, customer, order.ID, "ordered twice")
	if err != nil || cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled order, got %+v err=%v", cancelled, err)
	}
	refunded, err := f.facade.UpdateRefundStatus(ctx, order.ID, model.RefundStatusProcessed, nil)
	if err != nil || refunded.RefundStatus != model.RefundStatusProcessed {
		t.Fatalf("expected processed refund, got %+v err=%v", refunded, err)
	}
}

func TestStoreFacadeSettings(t *testing.T) {
	f := newFacade(nil)
	ctx := context.Background()

	current, err := f.facade.Settings(ctx)
	if err != nil || !current.GatewayEnabled {
		t.Fatalf("expected default settings, got %+v err=%v", current, err)
	}

	update := *current
	update.GatewayEnabled = false
	update.ShippingFlatRate = decimal.NewFromInt(99)
	saved, err := f.facade.UpdateSettings(ctx, update)
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if saved.GatewayEnabled || !saved.ShippingFlatRate.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("unexpected saved settings %+v", saved)
	}

	reloaded, err := f.facade.Settings(ctx)
	if err != nil || reloaded.GatewayEnabled {
		t.Fatalf("expected persisted settings, got %+v err=%v", reloaded, err)
	}
}

func TestStoreFacadeHealth(t *testing.T) {
	if err := newFacade(nil).facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy without checker, got %v", err)
	}
	if err := newFacade(healthStub{}).facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	down := errors.New("connection refused")
	if err := newFacade(healthStub{err: down}).facade.Health(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected checker error, got %v", err)
	}
}
