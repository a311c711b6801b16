package model

import "time"

// PaymentIntent is the gateway order created before client-side checkout.
type PaymentIntent struct {
	OrderRef string
	Amount   int64
	Currency string
	Receipt  string
}

// PaymentConfirmation is the data the gateway hands back to the client.
type PaymentConfirmation struct {
	OrderRef   string
	PaymentRef string
	Signature  string
	PayerEmail string
}

// Invoice is a stored rendered invoice document.
type Invoice struct {
	OrderID   string
	Number    string
	PDF       []byte
	CreatedAt time.Time
}
