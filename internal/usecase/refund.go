package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// CancelOrder cancels an order that has not left the warehouse. Paid orders
// get a full refund request.
func (u *OrderUseCase) CancelOrder(ctx context.Context, principal model.Principal, id, reason string) (*model.Order, error) {
	order, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if order.Status.LeftWarehouse() {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidState, shippedNotCancellable)
	}
	if order.Status == model.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: order already cancelled", domainErrors.ErrInvalidState)
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	now := u.now()
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultCancelReason
	}
	order.CancellationReason = reason
	markCancelled(order, reason)
	order.Track(string(model.OrderStatusCancelled), "", "Order cancelled: "+order.CancellationReason, now)
	order.UpdatedAt = now

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("order cancelled",
		slog.String("order", order.ID),
		slog.Bool("refund_requested", order.RefundStatus == model.RefundStatusRequested),
	)
	u.notifyCustomer(settings, u.composer.Cancellation(order))
	return order, nil
}

// UpdateRefundStatus records refund progress. Amount, when given, replaces the
// stored refund amount and must lie between zero and the order total.
func (u *OrderUseCase) UpdateRefundStatus(ctx context.Context, id string, status model.RefundStatus, amount *decimal.Decimal) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown refund status %q", domainErrors.ErrValidation, status)
	}
	if amount != nil && amount.IsNegative() {
		return nil, fmt.Errorf("%w: refund amount must not be negative", domainErrors.ErrValidation)
	}

	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount != nil && amount.GreaterThan(order.TotalPrice) {
		return nil, fmt.Errorf("%w: refund amount exceeds order total", domainErrors.ErrValidation)
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	now := u.now()
	order.RefundStatus = status
	if amount != nil {
		a := amount.Round(2)
		order.RefundAmount = &a
	}
	if status == model.RefundStatusProcessed {
		order.RefundDate = &now
	}
	order.UpdatedAt = now

	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("refund status updated", slog.String("order", order.ID), slog.String("refund_status", string(status)))
	u.notifyCustomer(settings, u.composer.RefundUpdate(order))
	return order, nil
}

// markCancelled records the reason and opens a full refund for paid orders.
func markCancelled(order *model.Order, reason string) {
	order.Status = model.OrderStatusCancelled
	if order.CancellationReason == "" {
		order.CancellationReason = reason
	}
	if order.IsPaid && order.RefundStatus != model.RefundStatusProcessed {
		amount := order.TotalPrice
		order.RefundStatus = model.RefundStatusRequested
		order.RefundAmount = &amount
	}
}
