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

// Currency is the only currency the store charges in.
const Currency = "INR"

var paisePerRupee = decimal.NewFromInt(100)

// CreatePaymentIntent registers the order total with the gateway and stores
// the returned gateway order reference.
func (u *OrderUseCase) CreatePaymentIntent(ctx context.Context, principal model.Principal, id string) (*model.PaymentIntent, error) {
	order, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := payable(order); err != nil {
		return nil, err
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !settings.GatewayEnabled {
		return nil, fmt.Errorf("%w: online payments are disabled", domainErrors.ErrValidation)
	}

	amount := order.TotalPrice.Mul(paisePerRupee).Round(0).IntPart()
	intent, err := u.gateway.CreateIntent(ctx, amount, Currency, order.ID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	order.GatewayOrderRef = intent.OrderRef
	order.UpdatedAt = u.now()
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("payment intent created", slog.String("order", order.ID), slog.String("gateway_order", intent.OrderRef))
	return intent, nil
}

// RecordPayment marks order paid after verifying the gateway signature.
// A failed verification leaves the order untouched.
func (u *OrderUseCase) RecordPayment(ctx context.Context, principal model.Principal, id string, conf model.PaymentConfirmation) (*model.Order, error) {
	conf.OrderRef = strings.TrimSpace(conf.OrderRef)
	conf.PaymentRef = strings.TrimSpace(conf.PaymentRef)
	if conf.OrderRef == "" || conf.PaymentRef == "" || conf.Signature == "" {
		return nil, fmt.Errorf("%w: order reference, payment reference and signature are required", domainErrors.ErrValidation)
	}

	order, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if order.GatewayOrderRef == "" || order.GatewayOrderRef != conf.OrderRef {
		u.logger.Warn("payment for unknown gateway order", slog.String("order", order.ID), slog.String("gateway_order", conf.OrderRef))
		return nil, fmt.Errorf("%w: gateway order does not match", domainErrors.ErrPaymentVerification)
	}
	if !u.gateway.VerifySignature(conf.OrderRef, conf.PaymentRef, conf.Signature) {
		u.logger.Warn("payment signature mismatch", slog.String("order", order.ID))
		return nil, fmt.Errorf("%w: signature mismatch", domainErrors.ErrPaymentVerification)
	}
	// A verified repeat of the recorded payment is a no-op.
	if order.IsPaid && order.PaymentResult != nil && order.PaymentResult.ExternalID == conf.PaymentRef {
		return order, nil
	}
	if err := payable(order); err != nil {
		return nil, err
	}

	now := u.now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentMethod = model.PaymentMethodGateway
	order.PaymentResult = &model.PaymentResult{
		ExternalID: conf.PaymentRef,
		Status:     model.PaymentStatusSuccess,
		UpdateTime: now,
		PayerEmail: strings.TrimSpace(conf.PayerEmail),
	}
	order.UpdatedAt = now
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("payment recorded", slog.String("order", order.ID), slog.String("payment", conf.PaymentRef))
	return order, nil
}

// ConfirmBankTransfer marks a manual bank transfer as received.
func (u *OrderUseCase) ConfirmBankTransfer(ctx context.Context, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != model.PaymentMethodBankTransfer {
		return nil, fmt.Errorf("%w: order is not paid by bank transfer", domainErrors.ErrInvalidState)
	}
	if err := payable(order); err != nil {
		return nil, err
	}

	now := u.now()
	result := model.PaymentResult{}
	if order.PaymentResult != nil {
		result = *order.PaymentResult
	}
	result.Status = model.PaymentStatusSuccess
	result.UpdateTime = now

	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &result
	order.UpdatedAt = now
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	u.logger.Info("bank transfer confirmed", slog.String("order", order.ID), slog.String("utr", result.ExternalID))
	return order, nil
}

func payable(order *model.Order) error {
	if order.IsPaid {
		return fmt.Errorf("%w: order already paid", domainErrors.ErrInvalidState)
	}
	if order.Status == model.OrderStatusCancelled {
		return fmt.Errorf("%w: order is cancelled", domainErrors.ErrInvalidState)
	}
	return nil
}
