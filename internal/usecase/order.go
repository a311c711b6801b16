package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/fabricstore/internal/adapter/gateway"
	"github.com/polkiloo/fabricstore/internal/config"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/domain/repository"
	"github.com/polkiloo/fabricstore/internal/invoice"
	"github.com/polkiloo/fabricstore/internal/notify"
)

const (
	placedDescription    = "Order has been placed successfully."
	defaultCancelReason  = "User cancelled"
	adminCancelReason    = "Cancelled by store"
	invoicePathTemplate  = "%s/api/orders/%s/invoice"
	statusUpdateTemplate = "Order status updated to %s"
)

// InvoiceRenderer produces invoice documents for orders.
type InvoiceRenderer interface {
	Render(order *model.Order) ([]byte, error)
}

// Notifier accepts messages for asynchronous delivery.
type Notifier interface {
	Enqueue(msg notify.Message) bool
}

// SettingsProvider returns the settings in effect for the current request.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.StoreSettings, error)
}

// OrderParams lists OrderUseCase collaborators.
type OrderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
	Invoices repository.InvoiceRepository
	Settings SettingsProvider
	Gateway  gateway.Client
	Renderer InvoiceRenderer
	Composer *notify.Composer
	Notifier Notifier
	Policy   TransitionPolicy
	Clock    Clock
	NewID    IDGenerator
	Config   *config.Config
	Logger   *slog.Logger
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	invoices repository.InvoiceRepository
	settings SettingsProvider
	gateway  gateway.Client
	renderer InvoiceRenderer
	composer *notify.Composer
	notifier Notifier
	policy   TransitionPolicy
	now      Clock
	newID    IDGenerator
	baseURL  string
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(p OrderParams) *OrderUseCase {
	policy := p.Policy
	if policy == nil {
		policy = PermissiveTransitions{}
	}
	return &OrderUseCase{
		orders:   p.Orders,
		products: p.Products,
		users:    p.Users,
		invoices: p.Invoices,
		settings: p.Settings,
		gateway:  p.Gateway,
		renderer: p.Renderer,
		composer: p.Composer,
		notifier: p.Notifier,
		policy:   policy,
		now:      p.Clock,
		newID:    p.NewID,
		baseURL:  p.Config.PublicBaseURL,
		logger:   p.Logger,
	}
}

// PlaceOrder validates checkout input, snapshots catalog prices and stores a
// Pending order.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, principal model.Principal, in model.Checkout) (*model.Order, error) {
	if err := ValidateItems(in.Items); err != nil {
		return nil, err
	}
	if err := ValidateAddress("shipping", in.ShippingAddress); err != nil {
		return nil, err
	}
	billing := in.ShippingAddress
	if in.BillingAddress != nil && !in.BillingAddress.IsZero() {
		if err := ValidateAddress("billing", *in.BillingAddress); err != nil {
			return nil, err
		}
		billing = *in.BillingAddress
	}
	if !in.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrValidation, in.PaymentMethod)
	}
	reference := strings.TrimSpace(in.PaymentReference)
	if in.PaymentMethod == model.PaymentMethodBankTransfer && reference == "" {
		return nil, fmt.Errorf("%w: bank transfer reference is required", domainErrors.ErrValidation)
	}

	settings, err := u.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !settings.PaymentMethodEnabled(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment method %s is disabled", domainErrors.ErrValidation, in.PaymentMethod)
	}

	items := make([]model.LineItem, 0, len(in.Items))
	for _, input := range in.Items {
		item, err := u.snapshotItem(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	customer, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	now := u.now()
	order := &model.Order{
		ID:              u.newID(),
		UserID:          customer.ID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  billing,
		PaymentMethod:   in.PaymentMethod,
		Status:          model.OrderStatusPending,
		RefundStatus:    model.RefundStatusNone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.PaymentMethod == model.PaymentMethodBankTransfer {
		order.PaymentResult = &model.PaymentResult{
			ExternalID: reference,
			Status:     model.PaymentStatusPendingVerification,
			UpdateTime: now,
		}
	}
	order.ItemsPrice = ItemsPrice(order.Items)
	order.ShippingPrice = ShippingPrice(order.ItemsPrice, settings)
	ApplyTotals(order)
	order.Track(model.TrackingStatusOrdered, "", placedDescription, now)

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("order placed",
		slog.String("order", order.ID),
		slog.Int64("user", order.UserID),
		slog.String("total", order.TotalPrice.StringFixed(2)),
	)

	u.notifyCustomer(settings, u.composer.OrderConfirmation(order))
	if settings.AdminEmail != "" {
		u.enqueue(u.composer.AdminNewOrder(order, settings.AdminEmail))
	}
	return order, nil
}

func (u *OrderUseCase) snapshotItem(ctx context.Context, in model.CheckoutItem) (model.LineItem, error) {
	product, err := u.products.GetByID(ctx, in.ProductRef)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.LineItem{}, fmt.Errorf("%w: unknown product %s", domainErrors.ErrValidation, in.ProductRef)
		}
		return model.LineItem{}, err
	}
	kind := in.Kind
	if kind == "" {
		kind = model.ItemKindRegular
	}
	price := product.PricePerMeter
	if kind == model.ItemKindSample {
		price = product.SamplePrice
	}
	return model.LineItem{
		ID:                u.newID(),
		Name:              product.Name,
		Quantity:          in.Quantity,
		UnitPrice:         price,
		ProductRef:        product.ID,
		MaterialType:      product.MaterialType,
		Image:             product.Image,
		Kind:              kind,
		CustomizationNote: strings.TrimSpace(in.CustomizationNote),
		RelatedSampleRef:  in.RelatedSampleRef,
		RiskAccepted:      in.RiskAccepted,
	}, nil
}

// Get returns order visible to principal.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(principal, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser returns principal's orders newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, principal.UserID)
}

// ListAll returns every order newest first, optionally filtered by status.
func (u *OrderUseCase) ListAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, filter.Status)
	}
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	return u.orders.List(ctx, filter)
}

// AdvanceStatus moves order to in.Status, appends one tracking entry and runs
// side effects after the change is stored. Invoice and mail failures are
// logged and never fail the transition.
func (u *OrderUseCase) AdvanceStatus(ctx context.Context, id string, in model.StatusChange) (*model.Order, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, in.Status)
	}
	manualURL := strings.TrimSpace(in.ManualInvoiceURL)
	if manualURL != "" && !isHTTPURL(manualURL) {
		return nil, fmt.Errorf("%w: manual invoice url must be http or https", domainErrors.ErrValidation)
	}

	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Allow(order.Status, in.Status); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(in.InvoiceNumber)
	if number != "" && number != order.InvoiceNumber && order.InvoiceURL != "" && !order.IsManualInvoice {
		return nil, fmt.Errorf("%w: invoice %s is already issued", domainErrors.ErrInvalidState, order.InvoiceNumber)
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	now := u.now()
	previous := order.Status
	order.Status = in.Status
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = fmt.Sprintf(statusUpdateTemplate, in.Status)
	}
	order.Track(string(in.Status), strings.TrimSpace(in.Location), description, now)

	switch in.Status {
	case model.OrderStatusDelivered:
		order.IsDelivered = true
		order.DeliveredAt = &now
	case model.OrderStatusCancelled:
		markCancelled(order, adminCancelReason)
	}
	if number != "" {
		order.InvoiceNumber = number
	}
	if manualURL != "" {
		order.InvoiceURL = manualURL
		order.IsManualInvoice = true
	}
	order.UpdatedAt = now

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("order status changed",
		slog.String("order", order.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(order.Status)),
	)

	switch {
	case order.Status == model.OrderStatusShipped && order.InvoiceURL == "":
		pdf := u.issueInvoice(ctx, order)
		u.notifyCustomer(settings, u.composer.Dispatched(order, pdf))
	case order.Status == model.OrderStatusShipped:
		u.notifyCustomer(settings, u.composer.Dispatched(order, nil))
	case order.Status == model.OrderStatusCancelled:
		u.notifyCustomer(settings, u.composer.Cancellation(order))
	default:
		u.notifyCustomer(settings, u.composer.StatusUpdate(order))
	}
	return order, nil
}

// issueInvoice renders and stores the invoice, then records its number, url
// and date on order. On failure order is left as it was and nil is returned.
func (u *OrderUseCase) issueInvoice(ctx context.Context, order *model.Order) []byte {
	candidate := order.Clone()
	issued := u.now()
	candidate.InvoiceNumber = invoice.Number(&candidate)
	candidate.InvoiceDate = &issued

	pdf, err := u.renderer.Render(&candidate)
	if err != nil {
		u.logger.Error("render invoice failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return nil
	}
	if err := u.invoices.Put(ctx, &model.Invoice{
		OrderID:   candidate.ID,
		Number:    candidate.InvoiceNumber,
		PDF:       pdf,
		CreatedAt: issued,
	}); err != nil {
		u.logger.Error("store invoice failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return nil
	}

	candidate.InvoiceURL = fmt.Sprintf(invoicePathTemplate, u.baseURL, candidate.ID)
	candidate.UpdatedAt = issued
	if err := u.orders.Save(ctx, &candidate); err != nil {
		u.logger.Error("record invoice on order failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		return pdf
	}
	*order = candidate
	u.logger.Info("invoice issued", slog.String("order", order.ID), slog.String("invoice", order.InvoiceNumber))
	return pdf
}

// Invoice returns the stored invoice document of an order visible to principal.
func (u *OrderUseCase) Invoice(ctx context.Context, principal model.Principal, id string) (*model.Order, *model.Invoice, error) {
	order, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, nil, err
	}
	if order.IsManualInvoice {
		return order, nil, nil
	}
	inv, err := u.invoices.Get(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, inv, nil
}

// AdjustFinancials overrides unit prices and shipping, then recalculates totals.
func (u *OrderUseCase) AdjustFinancials(ctx context.Context, id string, overrides map[string]decimal.Decimal, shipping *decimal.Decimal) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := Recompute(*order, overrides, shipping)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = u.now()
	if err := u.orders.Save(ctx, &updated); err != nil {
		return nil, err
	}
	u.logger.Info("order financials adjusted",
		slog.String("order", updated.ID),
		slog.String("total", updated.TotalPrice.StringFixed(2)),
	)
	return &updated, nil
}

func (u *OrderUseCase) notifyCustomer(settings *model.StoreSettings, msg notify.Message) {
	if !settings.NotifyCustomers {
		return
	}
	u.enqueue(msg)
}

func (u *OrderUseCase) enqueue(msg notify.Message) {
	if !u.notifier.Enqueue(msg) {
		u.logger.Warn("notification not queued",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("error", domainErrors.ErrNotification.Error()),
		)
	}
}

func authorize(principal model.Principal, order *model.Order) error {
	if principal.IsAdmin() || principal.Owns(order) {
		return nil
	}
	return fmt.Errorf("%w: order belongs to another customer", domainErrors.ErrForbidden)
}

func isHTTPURL(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
