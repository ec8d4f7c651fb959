package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sellhub.backend/internal/interfaces/http/handlers"
	"sellhub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	orderHandler      *handlers.OrderHandler
	accountHandler    *handlers.AccountHandler
	withdrawalHandler *handlers.WithdrawalHandler
	affiliateHandler  *handlers.AffiliateHandler
	adminHandler      *handlers.AdminHandler
	webhookHandler    *handlers.WebhookHandler
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Actor-ID, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Order routes
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.IdempotencyMiddleware(), d.orderHandler.CreateOrder)
			orders.GET("/:id", d.orderHandler.GetOrder)
		}

		// Gateway/fulfillment webhook (internal)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/gateway", d.webhookHandler.HandleGatewayEvent)
		}

		// Account routes
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:id/balance", d.accountHandler.GetBalance)
			accounts.GET("/:id/transactions", d.accountHandler.ListTransactions)
			accounts.GET("/:id/withdrawals", d.withdrawalHandler.ListWithdrawals)
		}

		// Withdrawal routes
		withdrawals := v1.Group("/withdrawals")
		{
			withdrawals.POST("", middleware.IdempotencyMiddleware(), d.withdrawalHandler.RequestWithdrawal)
			withdrawals.GET("/:id", d.withdrawalHandler.GetWithdrawal)
		}

		// Affiliate routes
		affiliates := v1.Group("/affiliates")
		{
			affiliates.GET("/:id/sales", d.affiliateHandler.ListSales)
			affiliates.GET("/:id/commission", d.affiliateHandler.GetCommission)
			affiliates.POST("/:id/payouts", middleware.IdempotencyMiddleware(), d.affiliateHandler.RequestPayout)
		}

		// Admin routes (actor identity required)
		admin := v1.Group("/admin")
		admin.Use(middleware.ActorMiddleware())
		{
			admin.POST("/withdrawals/:id/approve", d.adminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", d.adminHandler.RejectWithdrawal)
			admin.POST("/withdrawals/:id/execute", d.adminHandler.ExecuteWithdrawal)
			admin.POST("/accounts/:id/adjustments", d.adminHandler.CreateAdjustment)
			admin.POST("/refunds", d.adminHandler.CreateRefund)
		}
	}
}
