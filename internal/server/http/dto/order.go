package dto

import "github.com/polkiloo/fabricstore/internal/domain/model"

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	Product           string `json:"product"`
	Quantity          int    `json:"quantity"`
	Kind              string `json:"kind"`
	CustomizationNote string `json:"customizationNote"`
	RelatedSampleRef  string `json:"relatedSampleRef"`
	RiskAccepted      bool   `json:"riskAccepted"`
}

// PaymentResultRequest carries the bank transfer reference entered at checkout.
type PaymentResultRequest struct {
	ID string `json:"id"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	OrderItems      []OrderItemRequest    `json:"orderItems"`
	ShippingAddress model.Address         `json:"shippingAddress"`
	BillingAddress  *model.Address        `json:"billingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	PaymentResult   *PaymentResultRequest `json:"paymentResult"`
}

// CancelRequest optionally explains a cancellation.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// PaymentIntentResponse is handed to the client-side checkout widget.
type PaymentIntentResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
}

// PaymentConfirmationRequest is the data returned by the gateway widget.
type PaymentConfirmationRequest struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
	PayerEmail     string `json:"payerEmail"`
}
