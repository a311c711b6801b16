package model

import "github.com/shopspring/decimal"

// StoreSettings holds admin toggles read on every request.
type StoreSettings struct {
	GatewayEnabled        bool            `json:"gatewayEnabled"`
	BankTransferEnabled   bool            `json:"bankTransferEnabled"`
	NotifyCustomers       bool            `json:"notifyCustomers"`
	ShippingFlatRate      decimal.Decimal `json:"shippingFlatRate"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	AdminEmail            string          `json:"adminEmail"`
}

// PaymentMethodEnabled reports whether checkout may use method.
func (s StoreSettings) PaymentMethodEnabled(method PaymentMethod) bool {
	switch method {
	case PaymentMethodGateway:
		return s.GatewayEnabled
	case PaymentMethodBankTransfer:
		return s.BankTransferEnabled
	default:
		return false
	}
}
