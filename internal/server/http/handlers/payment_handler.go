package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/server/http/dto"
)

// PaymentHandler drives the online payment handshake.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Intent handles POST /api/orders/:id/payment/intent.
func (h *PaymentHandler) Intent(c *gin.Context) {
	intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), CurrentPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		GatewayOrderID: intent.OrderRef,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		Receipt:        intent.Receipt,
	})
}

// Confirm handles POST /api/orders/:id/payment.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req dto.PaymentConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	order, err := h.facade.RecordPayment(c.Request.Context(), CurrentPrincipal(c), c.Param("id"), model.PaymentConfirmation{
		OrderRef:   req.GatewayOrderID,
		PaymentRef: req.PaymentID,
		Signature:  req.Signature,
		PayerEmail: req.PayerEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
