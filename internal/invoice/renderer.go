// Package invoice lays out tax invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/config"
	domainErrors "github.com/polkiloo/fabricstore/internal/domain/errors"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

const (
	// HSNPlaceholder is printed for every line until products carry their own codes.
	HSNPlaceholder = "5208"

	maxItemName = 30
	dateLayout  = "02 Jan 2006"

	pageHeight   = 297.0
	marginLeft   = 15.0
	marginTop    = 15.0
	rowHeight    = 8.0
	tableBottom  = pageHeight - 70.0
	fontFamily   = "Helvetica"
	footerOffset = pageHeight - 25.0
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 75, "L"},
	{"HSN", 20, "C"},
	{"Unit Price", 30, "R"},
	{"Qty", 20, "R"},
	{"Amount", 35, "R"},
}

// Renderer turns order snapshots into invoice PDFs. It does no I/O.
type Renderer struct {
	company config.CompanyInfo
}

// NewRenderer builds Renderer printing the given company in the header.
func NewRenderer(company config.CompanyInfo) *Renderer {
	return &Renderer{company: company}
}

// DefaultNumber derives the invoice number from the order id.
func DefaultNumber(orderID string) string {
	id := orderID
	if len(id) > 8 {
		id = id[:8]
	}
	return "INV-" + strings.ToUpper(id)
}

// Number returns the manual invoice number when set, otherwise the derived one.
func Number(order *model.Order) string {
	if n := strings.TrimSpace(order.InvoiceNumber); n != "" {
		return n
	}
	return DefaultNumber(order.ID)
}

// Render produces the PDF bytes for order. Errors wrap ErrInvoiceRender.
func (r *Renderer) Render(order *model.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: nil order", domainErrors.ErrInvoiceRender)
	}
	pdf := r.layout(order)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvoiceRender, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvoiceRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) layout(order *model.Order) *fpdf.Fpdf {
	issued := invoiceDate(order)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCreationDate(issued)
	pdf.SetModificationDate(issued)
	pdf.SetTitle("Tax Invoice "+Number(order), true)
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	r.header(pdf, tr)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "", 10)
	meta := [][2]string{
		{"Invoice No:", Number(order)},
		{"Invoice Date:", issued.Format(dateLayout)},
		{"Order ID:", order.ID},
		{"Payment Method:", string(order.PaymentMethod)},
	}
	for _, row := range meta {
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	billTo(pdf, tr, order)
	pdf.Ln(4)

	tableHeader(pdf)
	for _, item := range order.Items {
		if pdf.GetY()+rowHeight > tableBottom {
			footer(pdf)
			pdf.AddPage()
			tableHeader(pdf)
		}
		pdf.SetFont(fontFamily, "", 10)
		cells := []string{
			tr(truncate(item.Name, maxItemName)),
			HSNPlaceholder,
			money(item.UnitPrice),
			fmt.Sprintf("%d", item.Quantity),
			money(item.Total()),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, rowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	totals(pdf, order)
	footer(pdf)
	return pdf
}

func (r *Renderer) header(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 8, tr(r.company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	if r.company.Address != "" {
		pdf.MultiCell(0, 4.5, tr(r.company.Address), "", "L", false)
	}
	if r.company.GSTIN != "" {
		pdf.CellFormat(0, 4.5, "GSTIN: "+r.company.GSTIN, "", 1, "L", false, 0, "")
	}
	y := pdf.GetY() + 2
	pdf.Line(marginLeft, y, 210-marginLeft, y)
	pdf.SetY(y + 3)
}

func billTo(pdf *fpdf.Fpdf, tr func(string) string, order *model.Order) {
	addr := order.BillingAddress
	if addr.IsZero() {
		addr = order.ShippingAddress
	}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	lines := []string{
		order.CustomerName,
		addr.AddressLine,
		strings.TrimSpace(addr.City + " " + addr.PostalCode),
		addr.Country,
	}
	if addr.Phone != "" {
		lines = append(lines, "Phone: "+addr.Phone)
	}
	for _, line := range lines {
		if line == "" {
			continue
		}
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(rowHeight)
}

func totals(pdf *fpdf.Fpdf, order *model.Order) {
	cgst := order.TaxPrice.Div(decimal.NewFromInt(2)).Round(2)
	sgst := order.TaxPrice.Sub(cgst)

	rows := [][2]string{
		{"Subtotal", money(order.ItemsPrice)},
		{"CGST (9%)", money(cgst)},
		{"SGST (9%)", money(sgst)},
	}
	if !order.ShippingPrice.IsZero() {
		rows = append(rows, [2]string{"Shipping", money(order.ShippingPrice)})
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "", 10)
	for _, row := range rows {
		pdf.CellFormat(145, 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(145, 8, "Grand Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, money(order.TotalPrice), "T", 1, "R", false, 0, "")
}

func footer(pdf *fpdf.Fpdf) {
	pdf.SetY(footerOffset)
	pdf.SetFont(fontFamily, "I", 9)
	pdf.CellFormat(0, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "This is a computer generated invoice.", "", 1, "C", false, 0, "")
}

func invoiceDate(order *model.Order) time.Time {
	if order.InvoiceDate != nil {
		return order.InvoiceDate.UTC()
	}
	return order.UpdatedAt.UTC()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
