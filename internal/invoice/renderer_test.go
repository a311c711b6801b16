package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/config"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

func sampleOrder(items int) *model.Order {
	issued := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	order := &model.Order{
		ID:            "3f2a9c1e-77aa-4c1d-9b1e-1234567890ab",
		CustomerName:  "Asha Verma",
		PaymentMethod: model.PaymentMethodGateway,
		BillingAddress: model.Address{
			AddressLine: "12 Ring Road",
			City:        "Surat",
			PostalCode:  "395002",
			Country:     "India",
			Phone:       "+91 99999 00000",
		},
		ItemsPrice:    decimal.NewFromInt(1000),
		TaxPrice:      decimal.NewFromInt(180),
		ShippingPrice: decimal.Zero,
		TotalPrice:    decimal.NewFromInt(1180),
		InvoiceDate:   &issued,
	}
	for i := 0; i < items; i++ {
		order.Items = append(order.Items, model.LineItem{
			Name:      fmt.Sprintf("Organic Cotton Poplin Natural Weave %d", i),
			Quantity:  10,
			UnitPrice: decimal.NewFromInt(100),
		})
	}
	return order
}

func TestDefaultNumber(t *testing.T) {
	cases := map[string]string{
		"3f2a9c1e-77aa-4c1d-9b1e-1234567890ab": "INV-3F2A9C1E",
		"abc":                                  "INV-ABC",
	}
	for id, want := range cases {
		if got := DefaultNumber(id); got != want {
			t.Errorf("DefaultNumber(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestNumberPrefersManual(t *testing.T) {
	order := &model.Order{ID: "deadbeefcafe", InvoiceNumber: " FAB/24/001 "}
	if got := Number(order); got != "FAB/24/001" {
		t.Fatalf("expected manual number, got %q", got)
	}
	order.InvoiceNumber = ""
	if got := Number(order); got != "INV-DEADBEEF" {
		t.Fatalf("expected derived number, got %q", got)
	}
}

func TestRenderContainsInvoiceBlocks(t *testing.T) {
	r := NewRenderer(config.CompanyInfo{Name: "Weaver Mills", Address: "Plot 4, GIDC", GSTIN: "24ABCDE1234F1Z5"})
	out, err := r.Render(sampleOrder(1))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	for _, want := range []string{
		"Weaver Mills",
		"TAX INVOICE",
		"INV-3F2A9C1E",
		"09 Mar 2024",
		"Asha Verma",
		"Organic Cotton Poplin Natural ",
		HSNPlaceholder,
		"1000.00",
		"90.00",
		"1180.00",
		"Thank you for your business!",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("expected PDF to contain %q", want)
		}
	}
	if bytes.Contains(out, []byte("Natural Weave")) {
		t.Errorf("expected item name to be truncated to %d chars", maxItemName)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(config.CompanyInfo{Name: "Weaver Mills"})
	first, err := r.Render(sampleOrder(3))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(sampleOrder(3))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical output for identical snapshots")
	}
}

func TestLayoutPaginatesLongOrders(t *testing.T) {
	r := NewRenderer(config.CompanyInfo{Name: "Weaver Mills"})
	if pages := r.layout(sampleOrder(2)).PageCount(); pages != 1 {
		t.Fatalf("expected single page, got %d", pages)
	}
	if pages := r.layout(sampleOrder(60)).PageCount(); pages < 3 {
		t.Fatalf("expected at least 3 pages for 60 rows, got %d", pages)
	}
}

func TestRenderSplitsTaxEvenly(t *testing.T) {
	order := sampleOrder(1)
	order.TaxPrice = decimal.RequireFromString("0.05")
	out, err := NewRenderer(config.CompanyInfo{Name: "X"}).Render(order)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 0.05 splits into 0.03 + 0.02 so both halves add back to the tax.
	if !bytes.Contains(out, []byte("0.03")) || !bytes.Contains(out, []byte("0.02")) {
		t.Fatal("expected tax halves in output")
	}
}

func TestRenderNilOrder(t *testing.T) {
	if _, err := NewRenderer(config.CompanyInfo{}).Render(nil); !errors.Is(err, domainErrors.ErrInvoiceRender) {
		t.Fatalf("expected ErrInvoiceRender, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 30); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	long := strings.Repeat("é", 40)
	if got := []rune(truncate(long, 30)); len(got) != 30 {
		t.Fatalf("expected 30 runes, got %d", len(got))
	}
}
