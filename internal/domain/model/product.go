package model

import "github.com/shopspring/decimal"

// Product is the catalog view read at checkout time.
type Product struct {
	ID            string
	Name          string
	PricePerMeter decimal.Decimal
	MaterialType  string
	SamplePrice   decimal.Decimal
	Image         string
}
