package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// Reason returned when cancelling an order that already left the warehouse.
const shippedNotCancellable = "order already shipped or delivered, request a return instead"

// TransitionPolicy decides whether an order may move between statuses.
type TransitionPolicy interface {
	Allow(from, to model.OrderStatus) error
}

// NewTransitionPolicy returns the strict table when strict is set and the
// permissive policy otherwise.
func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return StrictTransitions{}
	}
	return PermissiveTransitions{}
}

// PermissiveTransitions allows any move, backwards and skipping included,
// except cancelling an order that left the warehouse.
type PermissiveTransitions struct{}

// Allow implements TransitionPolicy.
func (PermissiveTransitions) Allow(from, to model.OrderStatus) error {
	return cancelGuard(from, to)
}

var strictTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing:     {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:        {model.OrderStatusOutForDelivery, model.OrderStatusDelivered},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered},
}

// StrictTransitions only allows forward moves along the happy path.
// Delivered and Cancelled are terminal.
type StrictTransitions struct{}

// Allow implements TransitionPolicy.
func (StrictTransitions) Allow(from, to model.OrderStatus) error {
	if err := cancelGuard(from, to); err != nil {
		return err
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move order from %s to %s", domainErrors.ErrInvalidState, from, to)
}

func cancelGuard(from, to model.OrderStatus) error {
	if to == model.OrderStatusCancelled && from.LeftWarehouse() {
		return fmt.Errorf("%w: %s", domainErrors.ErrInvalidState, shippedNotCancellable)
	}
	return nil
}
