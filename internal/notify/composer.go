package notify

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/polkiloo/fabricstore/internal/config"
	"github.com/polkiloo/fabricstore/internal/domain/model"
)

const pdfContentType = "application/pdf"

// Composer renders notification messages for order events.
type Composer struct {
	store   string
	printer *message.Printer
	policy  *bluemonday.Policy
	tmpl    *template.Template
}

// NewComposer builds composer signing messages with the configured company name.
func NewComposer(cfg *config.Config) *Composer {
	return &Composer{
		store:   cfg.Company.Name,
		printer: message.NewPrinter(language.MustParse("en-IN")),
		policy:  bluemonday.UGCPolicy(),
		tmpl:    template.Must(template.New("mail").Parse(mailTemplate)),
	}
}

type itemView struct {
	Name   string
	Qty    int
	Amount string
	Note   template.HTML
}

type mailView struct {
	Store     string
	Customer  string
	Heading   string
	Lines     []string
	Note      template.HTML
	Items     []itemView
	Total     string
	Link      string
	LinkLabel string
}

// Amount formats a rupee amount with locale grouping.
func (c *Composer) Amount(d decimal.Decimal) string {
	return c.printer.Sprintf("₹%.2f", d.Round(2).InexactFloat64())
}

// OrderConfirmation is sent to the customer after placement.
func (c *Composer) OrderConfirmation(order *model.Order) Message {
	lines := []string{fmt.Sprintf("We have received your order %s.", order.ID)}
	if order.PaymentMethod == model.PaymentMethodBankTransfer {
		ref := ""
		if order.PaymentResult != nil {
			ref = order.PaymentResult.ExternalID
		}
		lines = append(lines, fmt.Sprintf("Your bank transfer (UTR %s) is pending verification. We will start processing once it is confirmed.", ref))
	}
	view := c.orderView(order, "Thank you for your order", lines)
	return c.message(order.CustomerEmail, "Order Confirmation - "+order.ID, view, nil)
}

// AdminNewOrder alerts the store operator about a new order.
func (c *Composer) AdminNewOrder(order *model.Order, adminEmail string) Message {
	lines := []string{
		fmt.Sprintf("Order %s was placed by %s <%s>.", order.ID, order.CustomerName, order.CustomerEmail),
		fmt.Sprintf("Payment method: %s.", order.PaymentMethod),
	}
	view := c.orderView(order, "New order received", lines)
	view.Customer = ""
	return c.message(adminEmail, "New Order - "+order.ID, view, nil)
}

// StatusUpdate tells the customer about a status change.
func (c *Composer) StatusUpdate(order *model.Order) Message {
	lines := []string{fmt.Sprintf("Your order %s is now %s.", order.ID, order.Status)}
	if n := len(order.TrackingHistory); n > 0 {
		last := order.TrackingHistory[n-1]
		if last.Location != "" {
			lines = append(lines, "Location: "+last.Location)
		}
	}
	view := c.view(order, "Order update", lines)
	return c.message(order.CustomerEmail, fmt.Sprintf("Order %s - %s", order.ID, order.Status), view, nil)
}

// Dispatched announces shipment and carries the invoice when available.
func (c *Composer) Dispatched(order *model.Order, invoicePDF []byte) Message {
	lines := []string{fmt.Sprintf("Good news! Your order %s has been shipped.", order.ID)}
	if order.InvoiceNumber != "" {
		lines = append(lines, "Invoice number: "+order.InvoiceNumber)
	}
	view := c.orderView(order, "Your order is on its way", lines)
	if order.InvoiceURL != "" {
		view.Link = order.InvoiceURL
		view.LinkLabel = "Download invoice"
	}
	var attachments []Attachment
	if len(invoicePDF) > 0 {
		attachments = append(attachments, Attachment{
			Name:        invoiceFileName(order),
			Content:     invoicePDF,
			ContentType: pdfContentType,
		})
	}
	return c.message(order.CustomerEmail, "Order Dispatched - "+order.ID, view, attachments)
}

// Cancellation confirms a cancelled order and mentions refunds for paid ones.
func (c *Composer) Cancellation(order *model.Order) Message {
	lines := []string{fmt.Sprintf("Your order %s has been cancelled.", order.ID)}
	if order.RefundStatus == model.RefundStatusRequested && order.RefundAmount != nil {
		lines = append(lines, fmt.Sprintf("A refund of %s has been initiated and will reach your original payment method in 5-7 business days.", c.Amount(*order.RefundAmount)))
	}
	view := c.view(order, "Order cancelled", lines)
	if order.CancellationReason != "" {
		view.Note = c.sanitize("Reason: " + order.CancellationReason)
	}
	return c.message(order.CustomerEmail, "Order Cancelled - "+order.ID, view, nil)
}

// RefundUpdate reports refund bookkeeping changes.
func (c *Composer) RefundUpdate(order *model.Order) Message {
	lines := []string{fmt.Sprintf("The refund for order %s is now %s.", order.ID, order.RefundStatus)}
	if order.RefundAmount != nil {
		lines = append(lines, "Refund amount: "+c.Amount(*order.RefundAmount))
	}
	if order.RefundStatus == model.RefundStatusProcessed && order.RefundDate != nil {
		lines = append(lines, "Processed on "+order.RefundDate.Format("02 Jan 2006")+".")
	}
	view := c.view(order, "Refund update", lines)
	return c.message(order.CustomerEmail, "Refund Update - "+order.ID, view, nil)
}

func (c *Composer) view(order *model.Order, heading string, lines []string) mailView {
	return mailView{
		Store:    c.store,
		Customer: order.CustomerName,
		Heading:  heading,
		Lines:    lines,
	}
}

func (c *Composer) orderView(order *model.Order, heading string, lines []string) mailView {
	view := c.view(order, heading, lines)
	for _, item := range order.Items {
		iv := itemView{Name: item.Name, Qty: item.Quantity, Amount: c.Amount(item.Total())}
		if item.Kind == model.ItemKindSample {
			iv.Name += " (sample)"
		}
		if item.CustomizationNote != "" {
			iv.Note = c.sanitize(item.CustomizationNote)
		}
		view.Items = append(view.Items, iv)
	}
	view.Total = c.Amount(order.TotalPrice)
	return view
}

func (c *Composer) sanitize(s string) template.HTML {
	return template.HTML(c.policy.Sanitize(s))
}

func (c *Composer) message(to, subject string, view mailView, attachments []Attachment) Message {
	msg := Message{
		To:          to,
		Subject:     subject,
		Text:        c.text(view),
		Attachments: attachments,
	}
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err == nil {
		msg.HTML = buf.String()
	}
	return msg
}

func (c *Composer) text(view mailView) string {
	var b strings.Builder
	if view.Customer != "" {
		fmt.Fprintf(&b, "Hello %s,\n\n", view.Customer)
	}
	for _, line := range view.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if view.Note != "" {
		b.WriteString("\n")
		b.WriteString(c.plain(string(view.Note)))
		b.WriteString("\n")
	}
	if len(view.Items) > 0 {
		b.WriteString("\n")
		for _, item := range view.Items {
			fmt.Fprintf(&b, "- %s x %d: %s\n", item.Name, item.Qty, item.Amount)
		}
		fmt.Fprintf(&b, "Total: %s\n", view.Total)
	}
	if view.Link != "" {
		fmt.Fprintf(&b, "\n%s: %s\n", view.LinkLabel, view.Link)
	}
	fmt.Fprintf(&b, "\n%s\n", view.Store)
	return b.String()
}

func (c *Composer) plain(s string) string {
	return html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s))
}

func invoiceFileName(order *model.Order) string {
	name := order.InvoiceNumber
	if name == "" {
		name = order.ID
	}
	return strings.NewReplacer("/", "-", " ", "_").Replace(name) + ".pdf"
}

const mailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.Heading}}</h2>
  {{if .Customer}}<p>Hello {{.Customer}},</p>{{end}}
  {{range .Lines}}<p>{{.}}</p>{{end}}
  {{if .Note}}<p><em>{{.Note}}</em></p>{{end}}
  {{if .Items}}
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><th align="left">Item</th><th>Qty</th><th align="right">Amount</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}{{if .Note}}<br><small>{{.Note}}</small>{{end}}</td>
      <td align="center">{{.Qty}}</td>
      <td align="right">{{.Amount}}</td>
    </tr>
    {{end}}
    <tr><td colspan="2" align="right"><strong>Total</strong></td><td align="right"><strong>{{.Total}}</strong></td></tr>
  </table>
  {{end}}
  {{if .Link}}<p><a href="{{.Link}}">{{.LinkLabel}}</a></p>{{end}}
  <p>{{.Store}}</p>
</body>
</html>
`
