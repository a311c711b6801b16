package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/fabricstore/internal/domain/model"
	"github.com/polkiloo/fabricstore/internal/server/http/dto"
)

// AdminHandler serves store operator endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders?status=&limit=.
func (h *AdminHandler) Orders(c *gin.Context) {
	filter := model.OrderFilter{Status: model.OrderStatus(c.Query("status"))}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	orders, err := h.facade.AllOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	order, err := h.facade.AdvanceStatus(c.Request.Context(), c.Param("id"), model.StatusChange{
		Status:           model.OrderStatus(req.Status),
		InvoiceNumber:    req.InvoiceNumber,
		ManualInvoiceURL: req.InvoiceURL,
		Location:         req.Location,
		Description:      req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateRefund handles PUT /api/admin/orders/:id/refund.
func (h *AdminHandler) UpdateRefund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	order, err := h.facade.UpdateRefundStatus(c.Request.Context(), c.Param("id"), model.RefundStatus(req.RefundStatus), req.RefundAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdjustFinancials handles PUT /api/admin/orders/:id/financials.
func (h *AdminHandler) AdjustFinancials(c *gin.Context) {
	var req dto.FinancialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	overrides := make(map[string]decimal.Decimal, len(req.Items))
	for _, item := range req.Items {
		overrides[item.ID] = item.Price
	}
	order, err := h.facade.AdjustFinancials(c.Request.Context(), c.Param("id"), overrides, req.ShippingPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ConfirmBankTransfer handles POST /api/admin/orders/:id/bank-transfer/confirm.
func (h *AdminHandler) ConfirmBankTransfer(c *gin.Context) {
	order, err := h.facade.ConfirmBankTransfer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalSales:   stats.TotalSales,
		ActiveOrders: stats.ActiveOrders,
		ProductCount: stats.ProductCount,
		UserCount:    stats.UserCount,
		RecentOrders: stats.RecentOrders,
	})
}

// Settings handles GET /api/admin/settings.
func (h *AdminHandler) Settings(c *gin.Context) {
	settings, err := h.facade.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req model.StoreSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	settings, err := h.facade.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
