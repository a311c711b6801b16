package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/server/http/dto"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	in := model.Checkout{
		Items:           make([]model.CheckoutItem, 0, len(req.OrderItems)),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
	}
	for _, item := range req.OrderItems {
		in.Items = append(in.Items, model.CheckoutItem{
			ProductRef:        item.Product,
			Quantity:          item.Quantity,
			Kind:              model.ItemKind(item.Kind),
			CustomizationNote: item.CustomizationNote,
			RelatedSampleRef:  item.RelatedSampleRef,
			RiskAccepted:      item.RiskAccepted,
		})
	}
	if req.PaymentResult != nil {
		in.PaymentReference = req.PaymentResult.ID
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentPrincipal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "malformed request body")
			return
		}
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentPrincipal(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Invoice handles GET /api/orders/:id/invoice. Manual invoices redirect to
// their external location.
func (h *OrderHandler) Invoice(c *gin.Context) {
	order, inv, err := h.facade.Invoice(c.Request.Context(), CurrentPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if inv == nil {
		c.Redirect(http.StatusFound, order.InvoiceURL)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+inv.Number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", inv.PDF)
}
