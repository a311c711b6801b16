package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricedOrder() model.Order {
	order := model.Order{
		ID: "o-1",
		Items: []model.LineItem{
			{ID: "a", Quantity: 3, UnitPrice: dec("111.11")},
			{ID: "b", Quantity: 1, UnitPrice: dec("0.67")},
		},
		ShippingPrice: dec("150"),
	}
	ApplyTotals(&order)
	return order
}

func TestApplyTotalsRoundsTax(t *testing.T) {
	order := pricedOrder()
	if !order.ItemsPrice.Equal(dec("334.00")) {
		t.Fatalf("unexpected items price %s", order.ItemsPrice)
	}
	if !order.TaxPrice.Equal(dec("60.12")) {
		t.Fatalf("unexpected tax %s", order.TaxPrice)
	}
	if !order.TotalPrice.Equal(dec("544.12")) {
		t.Fatalf("unexpected total %s", order.TotalPrice)
	}
}

func TestShippingPriceThreshold(t *testing.T) {
	settings := &model.StoreSettings{ShippingFlatRate: dec("150"), FreeShippingThreshold: dec("1000")}
	cases := []struct {
		items string
		want  string
	}{
		{"999.99", "150"},
		{"1000", "0"},
		{"2500", "0"},
		{"0", "150"},
	}
	for _, tc := range cases {
		if got := ShippingPrice(dec(tc.items), settings); !got.Equal(dec(tc.want)) {
			t.Errorf("items %s: expected shipping %s, got %s", tc.items, tc.want, got)
		}
	}
}

func TestRecomputeIsIdempotentAndPure(t *testing.T) {
	order := pricedOrder()
	overrides := map[string]decimal.Decimal{"a": dec("100")}
	shipping := dec("0")

	first, err := Recompute(order, overrides, &shipping)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	second, err := Recompute(first, overrides, &shipping)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !first.TotalPrice.Equal(second.TotalPrice) || !first.TaxPrice.Equal(second.TaxPrice) {
		t.Fatalf("expected identical totals, got %s and %s", first.TotalPrice, second.TotalPrice)
	}
	if !first.ItemsPrice.Equal(dec("300.67")) || !first.ShippingPrice.IsZero() {
		t.Fatalf("unexpected recomputed order %+v", first)
	}
	if !order.Items[0].UnitPrice.Equal(dec("111.11")) || !order.ShippingPrice.Equal(dec("150")) {
		t.Fatal("input order must not change")
	}
	if first.Items[0].Quantity != 3 || len(first.Items) != 2 {
		t.Fatal("item set and quantities must not change")
	}
}

func TestRecomputeRoundsOverridesToPaise(t *testing.T) {
	order := pricedOrder()
	order.Items[0].Quantity = 10
	shipping := dec("12.345")

	out, err := Recompute(order, map[string]decimal.Decimal{"a": dec("100.0049")}, &shipping)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !out.Items[0].UnitPrice.Equal(dec("100")) {
		t.Fatalf("expected unit price rounded to 100, got %s", out.Items[0].UnitPrice)
	}
	if !out.ShippingPrice.Equal(dec("12.35")) {
		t.Fatalf("expected shipping rounded to 12.35, got %s", out.ShippingPrice)
	}
	sum := decimal.Zero
	for _, item := range out.Items {
		sum = sum.Add(item.Total())
	}
	if !sum.Equal(out.ItemsPrice) {
		t.Fatalf("line totals %s do not add up to items price %s", sum, out.ItemsPrice)
	}
}

func TestRecomputeRejectsBadOverrides(t *testing.T) {
	order := pricedOrder()
	negative := dec("-1")
	cases := []struct {
		name      string
		overrides map[string]decimal.Decimal
		shipping  *decimal.Decimal
	}{
		{"unknown item", map[string]decimal.Decimal{"zzz": dec("1")}, nil},
		{"negative price", map[string]decimal.Decimal{"a": negative}, nil},
		{"negative shipping", nil, &negative},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Recompute(order, tc.overrides, tc.shipping); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateAddressAndItems(t *testing.T) {
	if err := ValidateAddress("shipping", shippingAddress()); err != nil {
		t.Fatalf("expected valid address, got %v", err)
	}
	addr := shippingAddress()
	addr.Phone = ""
	if err := ValidateAddress("shipping", addr); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected missing phone to fail, got %v", err)
	}

	if err := ValidateItems([]model.CheckoutItem{{ProductRef: "p", Quantity: 1, Kind: model.ItemKindSample}}); err != nil {
		t.Fatalf("expected valid items, got %v", err)
	}
	if err := ValidateItems([]model.CheckoutItem{{ProductRef: " ", Quantity: 1}}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected missing product to fail, got %v", err)
	}
}
