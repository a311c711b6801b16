package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fabricstore/internal/server/http/handlers"
	"github.com/polkiloo/fabricstore/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	// PDFs are already compressed.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`/invoice$`})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.GET("/:id/invoice", orderHandler.Invoice)
	orders.POST("/:id/payment/intent", paymentHandler.Intent)
	orders.POST("/:id/payment", paymentHandler.Confirm)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/orders", adminHandler.Orders)
	admin.PUT("/orders/:id/status", adminHandler.UpdateStatus)
	admin.PUT("/orders/:id/refund", adminHandler.UpdateRefund)
	admin.PUT("/orders/:id/financials", adminHandler.AdjustFinancials)
	admin.POST("/orders/:id/bank-transfer/confirm", adminHandler.ConfirmBankTransfer)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/settings", adminHandler.Settings)
	admin.PUT("/settings", adminHandler.UpdateSettings)

	return engine
}
