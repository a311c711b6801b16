package test

import (
	"context"
	"sync"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/notify"
)

// NotifierStub records enqueued notifications.
type NotifierStub struct {
	mu       sync.Mutex
	Messages []notify.Message
	Reject   bool
}

// Enqueue stores msg unless Reject is set.
func (s *NotifierStub) Enqueue(msg notify.Message) bool {
	if s.Reject {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return true
}

// Sent returns a snapshot of recorded messages.
func (s *NotifierStub) Sent() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.Messages...)
}

// GatewayStub simulates the payment gateway.
type GatewayStub struct {
	CreateFn func(context.Context, int64, string, string) (*model.PaymentIntent, error)
	VerifyFn func(string, string, string) bool
}

// CreateIntent returns deterministic gateway order.
func (s GatewayStub) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*model.PaymentIntent, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, amount, currency, receipt)
	}
	return &model.PaymentIntent{OrderRef: "gw_" + receipt, Amount: amount, Currency: currency, Receipt: receipt}, nil
}

// VerifySignature accepts signature "valid" by default.
func (s GatewayStub) VerifySignature(orderRef, paymentRef, signature string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(orderRef, paymentRef, signature)
	}
	return signature == "valid"
}

// RendererStub produces fake invoice documents.
type RendererStub struct {
	RenderFn func(*model.Order) ([]byte, error)
	Calls    int
}

// Render returns configured bytes or a minimal PDF marker.
func (s *RendererStub) Render(order *model.Order) ([]byte, error) {
	s.Calls++
	if s.RenderFn != nil {
		return s.RenderFn(order)
	}
	return []byte("%PDF-stub " + order.ID), nil
}

// DispatcherStub records delivered messages and signals each delivery.
type DispatcherStub struct {
	mu        sync.Mutex
	Delivered []notify.Message
	Done      chan struct{}
}

// Send records msg and always reports success.
func (s *DispatcherStub) Send(ctx context.Context, msg notify.Message) bool {
	s.mu.Lock()
	s.Delivered = append(s.Delivered, msg)
	s.mu.Unlock()
	if s.Done != nil {
		s.Done <- struct{}{}
	}
	return true
}
