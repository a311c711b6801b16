package usecase

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

// ItemsPrice sums line totals rounded to paise.
func ItemsPrice(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total.Round(2)
}

// TaxPrice applies the flat GST rate to the items subtotal.
func TaxPrice(itemsPrice decimal.Decimal) decimal.Decimal {
	return itemsPrice.Mul(model.TaxRate).Round(2)
}

// ShippingPrice is free at or above the threshold and the flat rate below it.
func ShippingPrice(itemsPrice decimal.Decimal, settings *model.StoreSettings) decimal.Decimal {
	if itemsPrice.GreaterThanOrEqual(settings.FreeShippingThreshold) {
		return decimal.Zero
	}
	return settings.ShippingFlatRate.Round(2)
}

// ApplyTotals recomputes the derived money fields of order from its items.
func ApplyTotals(order *model.Order) {
	order.ItemsPrice = ItemsPrice(order.Items)
	order.TaxPrice = TaxPrice(order.ItemsPrice)
	order.ShippingPrice = order.ShippingPrice.Round(2)
	order.TotalPrice = order.ItemsPrice.Add(order.TaxPrice).Add(order.ShippingPrice)
}

// Recompute applies unit price overrides keyed by line item id and an optional
// shipping override, then recalculates totals. The input is left untouched.
// Quantities and the item set never change.
func Recompute(order model.Order, overrides map[string]decimal.Decimal, shipping *decimal.Decimal) (model.Order, error) {
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if order.FindItem(id) < 0 {
			return model.Order{}, fmt.Errorf("%w: unknown line item %s", domainErrors.ErrValidation, id)
		}
		if overrides[id].IsNegative() {
			return model.Order{}, fmt.Errorf("%w: negative price for line item %s", domainErrors.ErrValidation, id)
		}
	}
	if shipping != nil && shipping.IsNegative() {
		return model.Order{}, fmt.Errorf("%w: negative shipping price", domainErrors.ErrValidation)
	}

	out := order.Clone()
	// Prices are stored in paise so line totals add up to itemsPrice.
	for _, id := range ids {
		out.Items[out.FindItem(id)].UnitPrice = overrides[id].Round(2)
	}
	if shipping != nil {
		out.ShippingPrice = shipping.Round(2)
	}
	ApplyTotals(&out)
	return out, nil
}
