package model

// CheckoutItem is one checkout line as submitted by the customer.
type CheckoutItem struct {
	ProductRef        string
	Quantity          int
	Kind              ItemKind
	CustomizationNote string
	RelatedSampleRef  string
	RiskAccepted      bool
}

// Checkout collects the data needed to place an order.
type Checkout struct {
	Items           []CheckoutItem
	ShippingAddress Address
	BillingAddress  *Address
	PaymentMethod   PaymentMethod
	// PaymentReference is the bank transfer UTR for manual payments.
	PaymentReference string
}

// StatusChange carries the target status of an order and optional overrides.
type StatusChange struct {
	Status           OrderStatus
	InvoiceNumber    string
	ManualInvoiceURL string
	Location         string
	Description      string
}
